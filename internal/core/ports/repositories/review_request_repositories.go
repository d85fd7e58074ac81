package repositories

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
)

// ReviewRequestReader defines read operations for review requests.
type ReviewRequestReader interface {
	// FindRequestsByCorrelation retrieves every request matching the
	// coarse-grained (company, week, creator) correlation key.
	FindRequestsByCorrelation(ctx context.Context, companyID, weekKey, createdBy string) ([]domain.ReviewRequest, error)

	// FindOpenRequest returns the open (pending) request for the correlation
	// key, or nil when none exists.
	FindOpenRequest(ctx context.Context, companyID, weekKey, createdBy string) (*domain.ReviewRequest, error)

	// FindRequestsByCompany retrieves all requests for a company.
	FindRequestsByCompany(ctx context.Context, companyID string) ([]domain.ReviewRequest, error)
}

// ReviewRequestWriter defines single-record writes for review requests.
// Requests are never deleted by this engine.
type ReviewRequestWriter interface {
	// CreateRequest persists a new request and returns its id.
	CreateRequest(ctx context.Context, req domain.ReviewRequest) (string, error)

	// SetRequestStatus moves a request between pending and reviewed.
	SetRequestStatus(ctx context.Context, requestID string, status domain.ReviewRequestStatus) error
}

// ReviewRequestBatchOps builds batch operations for atomic request transitions.
type ReviewRequestBatchOps interface {
	// CreateRequestOp returns the batch operation creating req with a fresh id.
	CreateRequestOp(req domain.ReviewRequest) BatchOp

	// SetRequestStatusOp returns the batch operation moving a request's status.
	SetRequestStatusOp(requestID string, status domain.ReviewRequestStatus) BatchOp
}

// ReviewRequestRepository combines all review-request repository interfaces.
type ReviewRequestRepository interface {
	ReviewRequestReader
	ReviewRequestWriter
	ReviewRequestBatchOps
}
