// Package payroll computes the displayable pay breakdown of a check.
//
// The breakdown is presentation-only: the check's stored amount was settled at
// creation time and stays authoritative. Consumers show both and never write
// the computed total back.
package payroll

import (
	"fmt"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	otMultiplier      = decimal.NewFromFloat(1.5)
	holidayMultiplier = decimal.NewFromInt(2)
)

// Line is one row of a check's pay breakdown.
type Line struct {
	Label    string          `json:"label"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Subtotal decimal.Decimal `json:"subtotal"`
	// Estimated marks subtotals derived from the pro-rated-share fallback,
	// which has no precise source of truth.
	Estimated bool `json:"estimated,omitempty"`
}

// Breakdown is the computed pay detail of a check.
type Breakdown struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// ComputeDisplay computes the pay lines and presentation total for a check,
// dispatching on its resolved pay variant. All amounts are rounded to two
// decimal places, half-up, currency-agnostic.
func ComputeDisplay(c domain.Check) Breakdown {
	var lines []Line
	switch c.PayVariant() {
	case domain.PayVariantRelationship:
		lines = relationshipLines(c)
	case domain.PayVariantPerdiem:
		lines = perdiemLines(c)
	default:
		lines = hourlyLines(c.Hours, c.OTHours, c.HolidayHours, c.PayRate, "")
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return Breakdown{Lines: lines, Total: total.Round(2)}
}

// hourlyLines applies the simple hourly rule: regular at the rate, overtime at
// 1.5x, holiday at 2x. Lines with zero quantity are omitted.
func hourlyLines(hours, otHours, holidayHours, rate decimal.Decimal, labelSuffix string) []Line {
	var lines []Line
	if hours.IsPositive() {
		lines = append(lines, Line{
			Label:    "Regular" + labelSuffix,
			Quantity: hours,
			Rate:     rate,
			Subtotal: hours.Mul(rate).Round(2),
		})
	}
	if otHours.IsPositive() {
		otRate := rate.Mul(otMultiplier)
		lines = append(lines, Line{
			Label:    "Overtime" + labelSuffix,
			Quantity: otHours,
			Rate:     otRate,
			Subtotal: otHours.Mul(otRate).Round(2),
		})
	}
	if holidayHours.IsPositive() {
		holRate := rate.Mul(holidayMultiplier)
		lines = append(lines, Line{
			Label:    "Holiday" + labelSuffix,
			Quantity: holidayHours,
			Rate:     holRate,
			Subtotal: holidayHours.Mul(holRate).Round(2),
		})
	}
	return lines
}

// perdiemLines applies the simple per-diem rule: the per-weekday breakdown when
// present (absent days count as zero), otherwise the flat amount.
func perdiemLines(c domain.Check) []Line {
	if c.PerdiemBreakdown {
		var lines []Line
		for _, day := range domain.Weekdays {
			amt, ok := c.PerdiemDays[day]
			if !ok || !amt.IsPositive() {
				continue
			}
			lines = append(lines, Line{
				Label:    fmt.Sprintf("Per diem (%s)", day),
				Quantity: decimal.NewFromInt(1),
				Rate:     amt,
				Subtotal: amt.Round(2),
			})
		}
		return lines
	}
	return []Line{{
		Label:    "Per diem",
		Quantity: decimal.NewFromInt(1),
		Rate:     c.PerdiemAmount,
		Subtotal: c.PerdiemAmount.Round(2),
	}}
}

// relationshipLines computes one subtotal per relationship, then appends
// check-level overtime and holiday lines once so they are never multiplied
// across relationships.
func relationshipLines(c domain.Check) []Line {
	var lines []Line
	perdiemCount := 0
	for _, rel := range c.RelationshipDetails {
		if rel.PayType == domain.PayTypePerdiem {
			perdiemCount++
		}
	}

	for _, rel := range c.RelationshipDetails {
		label := rel.ClientName
		if label == "" {
			label = rel.RelationshipID
		}

		if rel.PayType == domain.PayTypePerdiem {
			lines = append(lines, relationshipPerdiemLine(c, rel, label, perdiemCount))
			continue
		}

		rate := effectiveRate(c, rel)
		hours := relationshipHours(c, rel)
		lines = append(lines, Line{
			Label:    label,
			Quantity: hours,
			Rate:     rate,
			Subtotal: hours.Mul(rate).Round(2),
		})
	}

	if c.OTHours.IsPositive() || c.HolidayHours.IsPositive() {
		lines = append(lines, hourlyLines(decimal.Zero, c.OTHours, c.HolidayHours, c.PayRate, "")...)
	}
	return lines
}

// relationshipPerdiemLine resolves a per-diem relationship's subtotal, falling
// back through: per-weekday breakdown, explicit flat amount, the check's stored
// amount when this is the sole relationship, and finally an even share of the
// stored amount across all per-diem relationships. The breakdown and flat
// amount are check-level totals, so when several per-diem relationships share
// one they are split evenly and flagged as estimates; any even share is an
// acknowledged estimation.
func relationshipPerdiemLine(c domain.Check, rel domain.RelationshipDetail, label string, perdiemCount int) Line {
	if c.PerdiemBreakdown && len(c.PerdiemDays) > 0 {
		sum := decimal.Zero
		days := int64(0)
		for _, day := range domain.Weekdays {
			if amt, ok := c.PerdiemDays[day]; ok {
				sum = sum.Add(amt)
				days++
			}
		}
		line := Line{Label: label, Quantity: decimal.NewFromInt(days), Rate: decimal.Zero, Subtotal: sum.Round(2)}
		if perdiemCount > 1 {
			line.Subtotal = sum.Div(decimal.NewFromInt(int64(perdiemCount))).Round(2)
			line.Estimated = true
		}
		return line
	}

	if c.PerdiemAmount.IsPositive() {
		if perdiemCount > 1 {
			share := c.PerdiemAmount.Div(decimal.NewFromInt(int64(perdiemCount))).Round(2)
			return Line{Label: label, Quantity: decimal.NewFromInt(1), Rate: share, Subtotal: share, Estimated: true}
		}
		return Line{Label: label, Quantity: decimal.NewFromInt(1), Rate: c.PerdiemAmount, Subtotal: c.PerdiemAmount.Round(2)}
	}

	if len(c.RelationshipDetails) == 1 {
		return Line{Label: label, Quantity: decimal.NewFromInt(1), Rate: c.Amount, Subtotal: c.Amount.Round(2)}
	}

	share := decimal.Zero
	if perdiemCount > 0 {
		share = c.Amount.Div(decimal.NewFromInt(int64(perdiemCount))).Round(2)
	}
	return Line{Label: label, Quantity: decimal.NewFromInt(1), Rate: share, Subtotal: share, Estimated: true}
}

// effectiveRate resolves a relationship's hourly rate: its own override first,
// then the check-level rate, else zero.
func effectiveRate(c domain.Check, rel domain.RelationshipDetail) decimal.Decimal {
	if rel.PayRate != nil {
		return *rel.PayRate
	}
	return c.PayRate
}

// relationshipHours resolves the hours attributed to a relationship: its entry
// in the relationship-hours map when present and positive, else the check-level
// hours field.
func relationshipHours(c domain.Check, rel domain.RelationshipDetail) decimal.Decimal {
	if h, ok := c.RelationshipHours[rel.RelationshipID]; ok && h.IsPositive() {
		return h
	}
	return c.Hours
}
