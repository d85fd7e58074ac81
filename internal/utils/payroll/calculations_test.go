package payroll_test

import (
	"testing"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	"github.com/crewpay/crewpay_backend/internal/utils/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeDisplayHourly(t *testing.T) {
	c := domain.Check{
		Hours:        dec("40"),
		OTHours:      dec("5"),
		HolidayHours: dec("0"),
		PayRate:      dec("20"),
	}

	b := payroll.ComputeDisplay(c)

	// 40*20 + 5*30 = 800 + 150; the zero-quantity holiday line is omitted.
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "Regular", b.Lines[0].Label)
	assert.True(t, b.Lines[0].Subtotal.Equal(dec("800.00")))
	assert.Equal(t, "Overtime", b.Lines[1].Label)
	assert.True(t, b.Lines[1].Rate.Equal(dec("30")))
	assert.True(t, b.Lines[1].Subtotal.Equal(dec("150.00")))
	assert.True(t, b.Total.Equal(dec("950.00")))
}

func TestComputeDisplayHourlyHolidayDoubleRate(t *testing.T) {
	c := domain.Check{
		Hours:        dec("8"),
		HolidayHours: dec("8"),
		PayRate:      dec("25"),
	}

	b := payroll.ComputeDisplay(c)

	require.Len(t, b.Lines, 2)
	assert.Equal(t, "Holiday", b.Lines[1].Label)
	assert.True(t, b.Lines[1].Rate.Equal(dec("50")))
	assert.True(t, b.Total.Equal(dec("600.00")))
}

func TestComputeDisplayPerdiemFlat(t *testing.T) {
	c := domain.Check{
		PerdiemAmount: dec("350"),
	}

	b := payroll.ComputeDisplay(c)

	require.Len(t, b.Lines, 1)
	assert.Equal(t, "Per diem", b.Lines[0].Label)
	assert.True(t, b.Total.Equal(dec("350.00")))
}

func TestComputeDisplayPerdiemBreakdown(t *testing.T) {
	c := domain.Check{
		PerdiemBreakdown: true,
		PerdiemAmount:    dec("999"), // ignored when the breakdown is present
		PerdiemDays: map[string]decimal.Decimal{
			"monday":    dec("75"),
			"wednesday": dec("75"),
			"friday":    dec("50"),
		},
	}

	b := payroll.ComputeDisplay(c)

	// Lines come out in calendar order; absent days are skipped.
	require.Len(t, b.Lines, 3)
	assert.Equal(t, "Per diem (monday)", b.Lines[0].Label)
	assert.Equal(t, "Per diem (wednesday)", b.Lines[1].Label)
	assert.Equal(t, "Per diem (friday)", b.Lines[2].Label)
	assert.True(t, b.Total.Equal(dec("200.00")))
}

func TestComputeDisplayRelationshipRates(t *testing.T) {
	override := dec("25")
	c := domain.Check{
		PayRate: dec("20"),
		Hours:   dec("10"),
		RelationshipDetails: []domain.RelationshipDetail{
			{RelationshipID: "r1", ClientName: "Acme", PayType: domain.PayTypeHourly, PayRate: &override},
			{RelationshipID: "r2", ClientName: "Globex", PayType: domain.PayTypeHourly},
		},
		RelationshipHours: map[string]decimal.Decimal{
			"r1": dec("10"),
			"r2": dec("5"),
		},
	}

	b := payroll.ComputeDisplay(c)

	// r1 uses its override (10*25), r2 falls back to the check rate (5*20).
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "Acme", b.Lines[0].Label)
	assert.True(t, b.Lines[0].Subtotal.Equal(dec("250.00")))
	assert.Equal(t, "Globex", b.Lines[1].Label)
	assert.True(t, b.Lines[1].Subtotal.Equal(dec("100.00")))
	assert.True(t, b.Total.Equal(dec("350.00")))
}

func TestComputeDisplayRelationshipSubtotalsIndependent(t *testing.T) {
	// Each relationship's subtotal must not depend on the others.
	override := dec("25")
	solo := domain.Check{
		PayRate: dec("20"),
		RelationshipDetails: []domain.RelationshipDetail{
			{RelationshipID: "r2", ClientName: "Globex", PayType: domain.PayTypeHourly},
		},
		RelationshipHours: map[string]decimal.Decimal{"r2": dec("5")},
	}
	paired := solo
	paired.RelationshipDetails = []domain.RelationshipDetail{
		{RelationshipID: "r1", ClientName: "Acme", PayType: domain.PayTypeHourly, PayRate: &override},
		{RelationshipID: "r2", ClientName: "Globex", PayType: domain.PayTypeHourly},
	}
	paired.RelationshipHours = map[string]decimal.Decimal{"r1": dec("10"), "r2": dec("5")}

	soloLine := payroll.ComputeDisplay(solo).Lines[0]
	pairedLines := payroll.ComputeDisplay(paired).Lines

	assert.True(t, soloLine.Subtotal.Equal(pairedLines[1].Subtotal))
}

func TestComputeDisplayRelationshipOvertimeOnce(t *testing.T) {
	c := domain.Check{
		PayRate: dec("20"),
		Hours:   dec("40"),
		OTHours: dec("4"),
		RelationshipDetails: []domain.RelationshipDetail{
			{RelationshipID: "r1", ClientName: "Acme", PayType: domain.PayTypeHourly},
			{RelationshipID: "r2", ClientName: "Globex", PayType: domain.PayTypeHourly},
		},
		RelationshipHours: map[string]decimal.Decimal{"r1": dec("24"), "r2": dec("16")},
	}

	b := payroll.ComputeDisplay(c)

	// One overtime line at the check level, not one per relationship.
	var otLines int
	for _, l := range b.Lines {
		if l.Label == "Overtime" {
			otLines++
		}
	}
	assert.Equal(t, 1, otLines)
	require.Len(t, b.Lines, 3)
	assert.True(t, b.Lines[2].Subtotal.Equal(dec("120.00")))
}

func TestComputeDisplayRelationshipPerdiemFallbacks(t *testing.T) {
	t.Run("sole relationship falls back to stored amount", func(t *testing.T) {
		c := domain.Check{
			Amount: dec("420"),
			RelationshipDetails: []domain.RelationshipDetail{
				{RelationshipID: "r1", ClientName: "Acme", PayType: domain.PayTypePerdiem},
			},
		}

		b := payroll.ComputeDisplay(c)

		require.Len(t, b.Lines, 1)
		assert.False(t, b.Lines[0].Estimated)
		assert.True(t, b.Total.Equal(dec("420.00")))
	})

	t.Run("multiple relationships share the stored amount as an estimate", func(t *testing.T) {
		c := domain.Check{
			Amount: dec("300"),
			RelationshipDetails: []domain.RelationshipDetail{
				{RelationshipID: "r1", ClientName: "Acme", PayType: domain.PayTypePerdiem},
				{RelationshipID: "r2", ClientName: "Globex", PayType: domain.PayTypePerdiem},
			},
		}

		b := payroll.ComputeDisplay(c)

		require.Len(t, b.Lines, 2)
		assert.True(t, b.Lines[0].Estimated)
		assert.True(t, b.Lines[0].Subtotal.Equal(dec("150.00")))
		assert.True(t, b.Lines[1].Estimated)
	})

	t.Run("shared breakdown is split instead of counted per relationship", func(t *testing.T) {
		c := domain.Check{
			PerdiemBreakdown: true,
			PerdiemDays: map[string]decimal.Decimal{
				"monday":    dec("100"),
				"wednesday": dec("80"),
			},
			RelationshipDetails: []domain.RelationshipDetail{
				{RelationshipID: "r1", ClientName: "Acme", PayType: domain.PayTypePerdiem},
				{RelationshipID: "r2", ClientName: "Globex", PayType: domain.PayTypePerdiem},
			},
		}

		b := payroll.ComputeDisplay(c)

		require.Len(t, b.Lines, 2)
		assert.True(t, b.Lines[0].Estimated)
		assert.True(t, b.Lines[0].Subtotal.Equal(dec("90.00")))
		assert.True(t, b.Lines[1].Subtotal.Equal(dec("90.00")))
		assert.True(t, b.Total.Equal(dec("180.00")), "breakdown total counted once, got %s", b.Total)
	})

	t.Run("shared flat amount is split instead of counted per relationship", func(t *testing.T) {
		c := domain.Check{
			PerdiemAmount: dec("250"),
			RelationshipDetails: []domain.RelationshipDetail{
				{RelationshipID: "r1", ClientName: "Acme", PayType: domain.PayTypePerdiem},
				{RelationshipID: "r2", ClientName: "Globex", PayType: domain.PayTypePerdiem},
			},
		}

		b := payroll.ComputeDisplay(c)

		require.Len(t, b.Lines, 2)
		assert.True(t, b.Lines[0].Estimated)
		assert.True(t, b.Lines[0].Subtotal.Equal(dec("125.00")))
		assert.True(t, b.Total.Equal(dec("250.00")))
	})

	t.Run("explicit flat amount beats the stored-amount fallback", func(t *testing.T) {
		c := domain.Check{
			Amount:        dec("999"),
			PerdiemAmount: dec("250"),
			RelationshipDetails: []domain.RelationshipDetail{
				{RelationshipID: "r1", ClientName: "Acme", PayType: domain.PayTypePerdiem},
			},
		}

		b := payroll.ComputeDisplay(c)

		require.Len(t, b.Lines, 1)
		assert.False(t, b.Lines[0].Estimated)
		assert.True(t, b.Total.Equal(dec("250.00")))
	})
}
