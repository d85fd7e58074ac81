package dto

import "time"

// CheckQuery carries the filter predicates of a check listing request.
// The caller's visibility set is applied before any of these.
type CheckQuery struct {
	CompanyID      string `form:"companyId"`
	Week           string `form:"week" binding:"omitempty,weekkey"`
	CreatedBy      string `form:"createdBy"`
	ClientID       string `form:"clientId"`
	Search         string `form:"search"`
	UnreviewedOnly bool   `form:"unreviewedOnly"`
	// Refresh forces a refetch, bypassing the engine's scoped cache.
	Refresh bool `form:"refresh"`
}

// PayLineResponse is one row of a computed pay breakdown.
type PayLineResponse struct {
	Label     string `json:"label"`
	Quantity  string `json:"quantity"`
	Rate      string `json:"rate"`
	Subtotal  string `json:"subtotal"`
	Estimated bool   `json:"estimated,omitempty"`
}

// CheckResponse is one check as presented to listing consumers. Amount is the
// stored authoritative total; ComputedTotal is the redisplayed calculation.
type CheckResponse struct {
	ID            string            `json:"id"`
	CompanyID     string            `json:"companyId"`
	EmployeeName  string            `json:"employeeName"`
	Date          time.Time         `json:"date"`
	WeekKey       string            `json:"weekKey"`
	CheckNumber   int               `json:"checkNumber"`
	CreatedBy     string            `json:"createdBy"`
	CreatorName   string            `json:"creatorName"`
	ClientNames   []string          `json:"clientNames,omitempty"`
	Reviewed      bool              `json:"reviewed"`
	Paid          bool              `json:"paid"`
	Amount        string            `json:"amount"`
	ComputedTotal string            `json:"computedTotal"`
	Lines         []PayLineResponse `json:"lines"`
}

// WeekGroupResponse is one week bucket of the listing, ordered internally by
// descending check number.
type WeekGroupResponse struct {
	WeekKey string          `json:"weekKey"`
	Label   string          `json:"label"` // display-only ISO week label
	Total   string          `json:"total"` // sum of stored amounts
	Checks  []CheckResponse `json:"checks"`
}

// CheckListResponse is the grouped, filtered, visibility-scoped result set,
// week buckets ordered by descending bucket date.
type CheckListResponse struct {
	Weeks      []WeekGroupResponse `json:"weeks"`
	CheckCount int                 `json:"checkCount"`
}

// CheckBreakdownResponse is the computed pay detail of one check.
type CheckBreakdownResponse struct {
	CheckID       string            `json:"checkId"`
	Lines         []PayLineResponse `json:"lines"`
	ComputedTotal string            `json:"computedTotal"`
	Amount        string            `json:"amount"`
}
