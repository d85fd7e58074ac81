package services

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	"github.com/crewpay/crewpay_backend/internal/dto"
)

// ReviewSvcFacade is the review/paid lifecycle engine: single and bulk
// transitions over checks and their associated review requests.
type ReviewSvcFacade interface {
	// SendForReview creates an ad-hoc pending request for one check.
	SendForReview(ctx context.Context, actorID string, checkID string) (*domain.ReviewRequest, error)

	// SendWeekForReview creates one pending request covering a whole
	// company/week for the actor. Fails with ErrDuplicate while an open
	// request exists for the same (company, week, creator).
	SendWeekForReview(ctx context.Context, actorID string, req dto.SendWeekForReviewRequest) (*domain.ReviewRequest, error)

	// BulkSendForReview creates one pending request per unreviewed check in
	// scope, atomically. Two-phase: see dto.BulkReviewRequest.
	BulkSendForReview(ctx context.Context, actorID string, req dto.BulkReviewRequest) (*dto.BulkConfirmation, error)

	// MarkReviewedBulk sets reviewed on every eligible check in scope in one
	// atomic batch. Admin only. Two-phase like BulkSendForReview.
	MarkReviewedBulk(ctx context.Context, actorID string, req dto.BulkReviewRequest) (*dto.BulkConfirmation, error)

	// ReviewViaDialog marks one check reviewed and synchronizes the request
	// records correlated by (company, week, creator), back-filling one when
	// none exists. Admin only.
	ReviewViaDialog(ctx context.Context, actorID string, checkID string) error

	// UndoReview clears one check's reviewed flag and moves the correlated
	// requests back to pending. Admin only.
	UndoReview(ctx context.Context, actorID string, checkID string) error

	// MarkPaid best-effort marks the given checks paid, skipping the already
	// paid ones. Per-check writes; failures do not roll anything back.
	MarkPaid(ctx context.Context, actorID string, checkIDs []string) (*dto.PaidMarkResult, error)

	// UnmarkPaid clears one check's paid flag. Admin only.
	UnmarkPaid(ctx context.Context, actorID string, checkID string) error

	// ListReviewRequests pages through a company's request history, newest first.
	ListReviewRequests(ctx context.Context, actorID string, query dto.ReviewRequestListQuery) (*dto.ReviewRequestListResponse, error)
}
