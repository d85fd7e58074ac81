package domain

import "time"

// ReviewRequestStatus is the lifecycle state of a review request.
type ReviewRequestStatus string

const (
	ReviewStatusPending  ReviewRequestStatus = "pending"
	ReviewStatusReviewed ReviewRequestStatus = "reviewed"
)

// ReviewRequestScope distinguishes what a request covers.
type ReviewRequestScope string

const (
	// ScopeSingleCheck: the request targets exactly one check.
	ScopeSingleCheck ReviewRequestScope = "single-check"
	// ScopeCompanyWeekCreator: the request covers every check the creator
	// submitted for that company and week. Admin review actions correlate
	// requests at this granularity, which can mark requests reviewed beyond
	// the single check being acted on. That widening is deliberate.
	ScopeCompanyWeekCreator ReviewRequestScope = "company-week-creator"
)

// ReviewRequest is an approval workflow record, decoupled from Check.
// Requests are never deleted by this engine; admin actions flip them between
// pending and reviewed, back-filling one when history would otherwise be absent.
type ReviewRequest struct {
	ID        string              `json:"id"`
	CheckID   string              `json:"checkId,omitempty"` // empty for whole-week batch requests
	CompanyID string              `json:"companyId"`
	WeekKey   string              `json:"weekKey"`
	CreatedBy string              `json:"createdBy"`
	Status    ReviewRequestStatus `json:"status"`
	Reviewed  bool                `json:"reviewed"` // mirrors Status for store-side equality filters
	CreatedAt time.Time           `json:"createdAt"`
}

// Scope resolves the coverage of this request from its fields.
func (r ReviewRequest) Scope() ReviewRequestScope {
	if r.CheckID != "" {
		return ScopeSingleCheck
	}
	return ScopeCompanyWeekCreator
}

// IsOpen reports whether the request still awaits review.
func (r ReviewRequest) IsOpen() bool {
	return r.Status == ReviewStatusPending
}
