package pgsql

import (
	"context"
	"time"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	"github.com/crewpay/crewpay_backend/internal/utils/mapping"
	"github.com/google/uuid"
)

// ReviewRequestRepository implements the review-request repository port over
// the document store. Requests are append-and-update only; nothing here deletes.
type ReviewRequestRepository struct {
	store portsrepo.DocumentStore
}

// NewReviewRequestRepository creates a review-request repository.
func NewReviewRequestRepository(store portsrepo.DocumentStore) portsrepo.ReviewRequestRepository {
	return &ReviewRequestRepository{store: store}
}

// Ensure ReviewRequestRepository implements the port.
var _ portsrepo.ReviewRequestRepository = (*ReviewRequestRepository)(nil)

func (r *ReviewRequestRepository) FindRequestsByCorrelation(ctx context.Context, companyID, weekKey, createdBy string) ([]domain.ReviewRequest, error) {
	docs, err := r.store.List(ctx, portsrepo.CollectionReviewRequests, portsrepo.Filters{
		"companyId": companyID,
		"weekKey":   weekKey,
		"createdBy": createdBy,
	})
	if err != nil {
		return nil, err
	}
	return mapping.ToReviewRequestSlice(docs)
}

func (r *ReviewRequestRepository) FindOpenRequest(ctx context.Context, companyID, weekKey, createdBy string) (*domain.ReviewRequest, error) {
	docs, err := r.store.List(ctx, portsrepo.CollectionReviewRequests, portsrepo.Filters{
		"companyId": companyID,
		"weekKey":   weekKey,
		"createdBy": createdBy,
		"status":    string(domain.ReviewStatusPending),
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	req, err := mapping.ToReviewRequest(docs[0])
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *ReviewRequestRepository) FindRequestsByCompany(ctx context.Context, companyID string) ([]domain.ReviewRequest, error) {
	docs, err := r.store.List(ctx, portsrepo.CollectionReviewRequests, portsrepo.Filters{
		"companyId": companyID,
	})
	if err != nil {
		return nil, err
	}
	return mapping.ToReviewRequestSlice(docs)
}

func (r *ReviewRequestRepository) CreateRequest(ctx context.Context, req domain.ReviewRequest) (string, error) {
	fields, err := r.requestFields(req)
	if err != nil {
		return "", err
	}
	return r.store.Create(ctx, portsrepo.CollectionReviewRequests, fields)
}

func (r *ReviewRequestRepository) SetRequestStatus(ctx context.Context, requestID string, status domain.ReviewRequestStatus) error {
	return r.store.Update(ctx, portsrepo.CollectionReviewRequests, requestID, statusFields(status))
}

func (r *ReviewRequestRepository) CreateRequestOp(req domain.ReviewRequest) portsrepo.BatchOp {
	fields, err := r.requestFields(req)
	if err != nil {
		// Requests are flat json-encodable structs; encoding cannot fail for
		// well-formed domain values, and op builders stay error-free so batch
		// assembly reads cleanly. A malformed op fails at batch submission.
		fields = map[string]any{}
	}
	return portsrepo.BatchOp{
		Kind:       portsrepo.BatchCreate,
		Collection: portsrepo.CollectionReviewRequests,
		ID:         uuid.NewString(),
		Fields:     fields,
	}
}

func (r *ReviewRequestRepository) SetRequestStatusOp(requestID string, status domain.ReviewRequestStatus) portsrepo.BatchOp {
	return portsrepo.BatchOp{
		Kind:       portsrepo.BatchUpdate,
		Collection: portsrepo.CollectionReviewRequests,
		ID:         requestID,
		Fields:     statusFields(status),
	}
}

func (r *ReviewRequestRepository) requestFields(req domain.ReviewRequest) (map[string]any, error) {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	req.Reviewed = req.Status == domain.ReviewStatusReviewed
	return mapping.ReviewRequestFields(req)
}

// statusFields keeps the reviewed mirror in lockstep with status.
func statusFields(status domain.ReviewRequestStatus) map[string]any {
	return map[string]any{
		"status":   string(status),
		"reviewed": status == domain.ReviewStatusReviewed,
	}
}
