package dto

import (
	"time"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
)

// SendWeekForReviewRequest asks for a whole company/week to be submitted for
// approval as one request record.
type SendWeekForReviewRequest struct {
	CompanyID string `json:"companyId" binding:"required"`
	WeekKey   string `json:"weekKey" binding:"required,weekkey"`
}

// BulkReviewRequest scopes a bulk transition: either an explicit check
// selection, or every eligible check in a company week.
//
// Bulk operations are two-phase: without Confirm the engine only reports the
// confirmation summary and commits nothing.
type BulkReviewRequest struct {
	CompanyID string   `json:"companyId"`
	WeekKey   string   `json:"weekKey" binding:"omitempty,weekkey"`
	CheckIDs  []string `json:"checkIds"`
	Confirm   bool     `json:"confirm"`
}

// BulkConfirmation is the result of a bulk transition call. When Committed is
// false it is the confirmation summary awaiting the caller's confirm.
type BulkConfirmation struct {
	TargetCount int    `json:"targetCount"`
	CompanyID   string `json:"companyId,omitempty"`
	WeekKey     string `json:"weekKey,omitempty"`
	ScopeLabel  string `json:"scopeLabel"` // e.g. "company week" or "selected checks"
	Committed   bool   `json:"committed"`
	Applied     int    `json:"applied"`
	Message     string `json:"message"`
}

// ReviewRequestResponse is one review request as presented to consumers.
type ReviewRequestResponse struct {
	ID        string    `json:"id"`
	CheckID   string    `json:"checkId,omitempty"`
	CompanyID string    `json:"companyId"`
	WeekKey   string    `json:"weekKey"`
	CreatedBy string    `json:"createdBy"`
	Status    string    `json:"status"`
	Scope     string    `json:"scope"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToReviewRequestResponse maps a domain review request to its response shape.
func ToReviewRequestResponse(r domain.ReviewRequest) ReviewRequestResponse {
	return ReviewRequestResponse{
		ID:        r.ID,
		CheckID:   r.CheckID,
		CompanyID: r.CompanyID,
		WeekKey:   r.WeekKey,
		CreatedBy: r.CreatedBy,
		Status:    string(r.Status),
		Scope:     string(r.Scope()),
		CreatedAt: r.CreatedAt,
	}
}

// ReviewRequestListQuery pages through a company's request history.
type ReviewRequestListQuery struct {
	CompanyID string `form:"companyId" binding:"required"`
	Cursor    string `form:"cursor"`
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
}

// ReviewRequestListResponse is a page of request history, newest first.
type ReviewRequestListResponse struct {
	Requests   []ReviewRequestResponse `json:"requests"`
	NextCursor string                  `json:"nextCursor,omitempty"`
}
