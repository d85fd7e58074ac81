package domain_test

import (
	"testing"
	"time"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekKeyAnchorsToSunday(t *testing.T) {
	// 2025-06-11 is a Wednesday; its pay week starts Sunday 2025-06-08.
	wednesday := time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-08", domain.WeekKey(wednesday))

	// A Sunday maps to itself.
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-08", domain.WeekKey(sunday))

	// Saturday still belongs to the week that started six days earlier.
	saturday := time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2025-06-08", domain.WeekKey(saturday))
}

func TestWeekKeyIdempotent(t *testing.T) {
	// Feeding any key's date back in must yield the same key.
	dates := []time.Time{
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 28, 6, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		key := domain.WeekKey(d)
		keyDate, err := domain.WeekKeyDate(key)
		require.NoError(t, err)
		assert.Equal(t, key, domain.WeekKey(keyDate), "week key must be a fixed point for date %s", d)
	}
}

func TestWeekKeyCrossesMonthAndYearBoundaries(t *testing.T) {
	// Thursday 2025-01-02 belongs to the week of Sunday 2024-12-29.
	assert.Equal(t, "2024-12-29", domain.WeekKey(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)))
}

func TestIsWeekKey(t *testing.T) {
	assert.True(t, domain.IsWeekKey("2025-06-08"))
	assert.False(t, domain.IsWeekKey("2025-6-8"))
	assert.False(t, domain.IsWeekKey("06/08/2025"))
	assert.False(t, domain.IsWeekKey(""))
}

func TestISOWeekLabel(t *testing.T) {
	// Display label only; note it disagrees with the bucket on Sundays
	// because ISO weeks start on Monday.
	assert.Equal(t, "Week 24, 2025", domain.ISOWeekLabel(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Week 23, 2025", domain.ISOWeekLabel(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)))
}
