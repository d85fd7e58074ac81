package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayType describes how a relationship (or a whole legacy check) is paid.
type PayType string

const (
	PayTypeHourly  PayType = "hourly"
	PayTypePerdiem PayType = "perdiem"
)

// PayVariant is the resolved interpretation of a check's pay fields.
// Legacy documents carry optional fields in several combinations; the variant
// is resolved once at read time so consumers never re-inspect raw fields.
type PayVariant string

const (
	// PayVariantHourly: legacy single-client check paid from hours/otHours/holidayHours × payRate.
	PayVariantHourly PayVariant = "simple-hourly"
	// PayVariantPerdiem: legacy single-client check paid a flat per-diem or a per-weekday breakdown.
	PayVariantPerdiem PayVariant = "simple-perdiem"
	// PayVariantRelationship: check split across one or more client relationships,
	// each with its own pay type and optional rate override.
	PayVariantRelationship PayVariant = "relationship-based"
)

// RelationshipDetail is one sub-contract within a check, linking it to a
// specific client with its own pay type and optional rate override.
type RelationshipDetail struct {
	RelationshipID string           `json:"relationshipId"`
	ClientID       string           `json:"clientId"`
	ClientName     string           `json:"clientName"`
	PayType        PayType          `json:"payType"`
	PayRate        *decimal.Decimal `json:"payRate,omitempty"` // overrides the check-level rate when set
}

// Check is one payroll record for an employee for a given date.
//
// The stored Amount is computed once at creation time and is authoritative for
// display totals; the engine recomputes a breakdown for presentation but never
// overwrites Amount.
type Check struct {
	ID           string `json:"id"`
	CompanyID    string `json:"companyId"`
	ClientID     string `json:"clientId,omitempty"` // legacy single-client checks only
	EmployeeName string `json:"employeeName"`

	// Date is the source of truth for week bucketing; the week key is always
	// derived from it, never stored independently.
	Date time.Time `json:"date"`

	RelationshipDetails []RelationshipDetail `json:"relationshipDetails,omitempty"`

	Hours        decimal.Decimal `json:"hours"`
	OTHours      decimal.Decimal `json:"otHours"`
	HolidayHours decimal.Decimal `json:"holidayHours"`
	PayRate      decimal.Decimal `json:"payRate"`

	PerdiemAmount decimal.Decimal `json:"perdiemAmount"`
	// PerdiemBreakdown marks that PerdiemDays carries per-weekday amounts that
	// replace the flat PerdiemAmount.
	PerdiemBreakdown bool                       `json:"perdiemBreakdown,omitempty"`
	PerdiemDays      map[string]decimal.Decimal `json:"perdiemDays,omitempty"`

	// RelationshipHours is keyed by relationship id and is meaningful only when
	// RelationshipDetails is non-empty.
	RelationshipHours map[string]decimal.Decimal `json:"relationshipHours,omitempty"`

	Amount decimal.Decimal `json:"amount"`

	Reviewed bool `json:"reviewed"`
	Paid     bool `json:"paid"`

	CreatedBy   string `json:"createdBy"`
	CheckNumber int    `json:"checkNumber"` // display ordering only
}

// Weekdays enumerates the keys of Check.PerdiemDays in calendar order.
var Weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// PayVariant resolves which of the pay-field combinations this check uses.
func (c Check) PayVariant() PayVariant {
	if len(c.RelationshipDetails) > 0 {
		return PayVariantRelationship
	}
	if c.PerdiemBreakdown || c.PerdiemAmount.IsPositive() {
		return PayVariantPerdiem
	}
	return PayVariantHourly
}

// WeekKey derives the Sunday-anchored bucket key for this check's date.
func (c Check) WeekKey() string {
	return WeekKey(c.Date)
}
