package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/dto"
	"github.com/crewpay/crewpay_backend/internal/middleware"
	"github.com/crewpay/crewpay_backend/internal/utils/pagination"
)

const (
	scopeLabelSelection   = "selected checks"
	scopeLabelCompanyWeek = "company week"
)

// reviewService is the review/paid lifecycle engine. Reviewed and paid are
// independent axes on a check; review requests are a decoupled approval
// trail that this engine creates and flips but never deletes.
type reviewService struct {
	checkRepo   portsrepo.CheckRepository
	requestRepo portsrepo.ReviewRequestRepository
	userRepo    portsrepo.UserRepository
	batch       portsrepo.BatchRunner
	invalidator portssvc.CacheInvalidator
}

// NewReviewService creates the review/paid state machine.
func NewReviewService(
	checkRepo portsrepo.CheckRepository,
	requestRepo portsrepo.ReviewRequestRepository,
	userRepo portsrepo.UserRepository,
	batch portsrepo.BatchRunner,
	invalidator portssvc.CacheInvalidator,
) portssvc.ReviewSvcFacade {
	return &reviewService{
		checkRepo:   checkRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		batch:       batch,
		invalidator: invalidator,
	}
}

var _ portssvc.ReviewSvcFacade = (*reviewService)(nil)

// SendForReview implements the ad-hoc single-check request. These may
// legitimately multiply for one (company, week, creator), so no duplicate
// guard applies here.
func (s *reviewService) SendForReview(ctx context.Context, actorID string, checkID string) (*domain.ReviewRequest, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	check, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if !actor.CanSeeCompany(check.CompanyID) {
		return nil, fmt.Errorf("%w: check %s", apperrors.ErrNotFound, checkID)
	}

	req := domain.ReviewRequest{
		CheckID:   check.ID,
		CompanyID: check.CompanyID,
		WeekKey:   check.WeekKey(),
		CreatedBy: actorID,
		Status:    domain.ReviewStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.requestRepo.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = id

	s.invalidate()
	return &req, nil
}

// SendWeekForReview creates one whole-week request. At most one open request
// may exist per (company, week, creator); a second send while one is open is
// a logic error this guard prevents.
func (s *reviewService) SendWeekForReview(ctx context.Context, actorID string, reqDTO dto.SendWeekForReviewRequest) (*domain.ReviewRequest, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.CanSeeCompany(reqDTO.CompanyID) {
		return nil, fmt.Errorf("%w: company %s", apperrors.ErrForbidden, reqDTO.CompanyID)
	}

	open, err := s.requestRepo.FindOpenRequest(ctx, reqDTO.CompanyID, reqDTO.WeekKey, actorID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, fmt.Errorf("%w: week %s is already awaiting review", apperrors.ErrDuplicate, reqDTO.WeekKey)
	}

	req := domain.ReviewRequest{
		CompanyID: reqDTO.CompanyID,
		WeekKey:   reqDTO.WeekKey,
		CreatedBy: actorID,
		Status:    domain.ReviewStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.requestRepo.CreateRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = id

	s.invalidate()
	return &req, nil
}

// BulkSendForReview creates one pending request per unreviewed check in scope,
// in a single atomic batch. A failed batch leaves zero requests behind.
func (s *reviewService) BulkSendForReview(ctx context.Context, actorID string, req dto.BulkReviewRequest) (*dto.BulkConfirmation, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	checks, label, err := s.scopeChecks(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	conf := s.confirmation(checks, label, req, "review request")
	if conf != nil {
		return conf, nil
	}

	now := time.Now().UTC()
	ops := make([]portsrepo.BatchOp, 0, len(checks))
	for _, c := range checks {
		ops = append(ops, s.requestRepo.CreateRequestOp(domain.ReviewRequest{
			CheckID:   c.ID,
			CompanyID: c.CompanyID,
			WeekKey:   c.WeekKey(),
			CreatedBy: actorID,
			Status:    domain.ReviewStatusPending,
			CreatedAt: now,
		}))
	}
	if err := s.batch.Batch(ctx, ops); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("bulk send-for-review batch rejected",
			slog.String("company_id", req.CompanyID), slog.String("week_key", req.WeekKey),
			slog.Int("target_count", len(ops)), slog.String("error", err.Error()))
		return nil, err
	}

	s.invalidate()
	return &dto.BulkConfirmation{
		TargetCount: len(checks),
		CompanyID:   req.CompanyID,
		WeekKey:     req.WeekKey,
		ScopeLabel:  label,
		Committed:   true,
		Applied:     len(ops),
		Message:     fmt.Sprintf("created %d review requests", len(ops)),
	}, nil
}

// MarkReviewedBulk sets reviewed on every eligible check in scope in one
// atomic batch. Admin direct review does not require or create review requests.
func (s *reviewService) MarkReviewedBulk(ctx context.Context, actorID string, req dto.BulkReviewRequest) (*dto.BulkConfirmation, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	checks, label, err := s.scopeChecks(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	conf := s.confirmation(checks, label, req, "review")
	if conf != nil {
		return conf, nil
	}

	ops := make([]portsrepo.BatchOp, 0, len(checks))
	for _, c := range checks {
		ops = append(ops, s.checkRepo.SetReviewedOp(c.ID, true))
	}
	if err := s.batch.Batch(ctx, ops); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("bulk review batch rejected",
			slog.String("company_id", req.CompanyID), slog.String("week_key", req.WeekKey),
			slog.Int("target_count", len(ops)), slog.String("error", err.Error()))
		return nil, err
	}

	s.invalidate()
	return &dto.BulkConfirmation{
		TargetCount: len(checks),
		CompanyID:   req.CompanyID,
		WeekKey:     req.WeekKey,
		ScopeLabel:  label,
		Committed:   true,
		Applied:     len(ops),
		Message:     fmt.Sprintf("marked %d checks reviewed", len(ops)),
	}, nil
}

// ReviewViaDialog marks one check reviewed and synchronizes its correlated
// review requests. Correlation is by (company, week, creator), deliberately
// coarse: updating them may cover requests for other checks sharing the same
// creator and week, which is accepted behavior of this workflow.
func (s *reviewService) ReviewViaDialog(ctx context.Context, actorID string, checkID string) error {
	return s.setReviewedWithRequestSync(ctx, actorID, checkID, true)
}

// UndoReview clears one check's reviewed flag and moves the correlated
// requests back to pending, back-filling one when none exists.
func (s *reviewService) UndoReview(ctx context.Context, actorID string, checkID string) error {
	return s.setReviewedWithRequestSync(ctx, actorID, checkID, false)
}

func (s *reviewService) setReviewedWithRequestSync(ctx context.Context, actorID string, checkID string, reviewed bool) error {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if err := requireAdmin(actor); err != nil {
		return err
	}

	check, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return err
	}

	if err := s.checkRepo.SetReviewed(ctx, checkID, reviewed); err != nil {
		return err
	}

	status := domain.ReviewStatusPending
	if reviewed {
		status = domain.ReviewStatusReviewed
	}

	weekKey := check.WeekKey()
	requests, err := s.requestRepo.FindRequestsByCorrelation(ctx, check.CompanyID, weekKey, check.CreatedBy)
	if err != nil {
		return err
	}

	if len(requests) == 0 {
		// Back-fill so the approval history is never silently absent.
		_, err := s.requestRepo.CreateRequest(ctx, domain.ReviewRequest{
			CheckID:   check.ID,
			CompanyID: check.CompanyID,
			WeekKey:   weekKey,
			CreatedBy: check.CreatedBy,
			Status:    status,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
	} else {
		ops := make([]portsrepo.BatchOp, 0, len(requests))
		for _, r := range requests {
			ops = append(ops, s.requestRepo.SetRequestStatusOp(r.ID, status))
		}
		if err := s.batch.Batch(ctx, ops); err != nil {
			return err
		}
	}

	s.invalidate()
	return nil
}

// MarkPaid best-effort marks checks paid. Writes are independent per check:
// a failure is logged and reported, other items proceed, nothing rolls back.
func (s *reviewService) MarkPaid(ctx context.Context, actorID string, checkIDs []string) (*dto.PaidMarkResult, error) {
	if actorID == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	checks, err := s.checkRepo.FindChecksByIDs(ctx, checkIDs)
	if err != nil {
		return nil, err
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	result := &dto.PaidMarkResult{}
	for _, c := range checks {
		if c.Paid {
			result.AlreadyPaid++
			continue
		}
		if err := s.checkRepo.SetPaid(ctx, c.ID, true); err != nil {
			logger.Error("paid marking failed",
				slog.String("check_id", c.ID), slog.String("company_id", c.CompanyID),
				slog.String("error", err.Error()))
			result.Failed = append(result.Failed, c.ID)
			continue
		}
		result.Marked++
	}

	if result.Marked > 0 {
		s.invalidate()
	}
	return result, nil
}

// UnmarkPaid clears the paid flag on one check. Admin only; this is the only
// user-facing paid toggle.
func (s *reviewService) UnmarkPaid(ctx context.Context, actorID string, checkID string) error {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.checkRepo.SetPaid(ctx, checkID, false); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ListReviewRequests pages through a company's request history, newest first,
// with a created-at cursor.
func (s *reviewService) ListReviewRequests(ctx context.Context, actorID string, query dto.ReviewRequestListQuery) (*dto.ReviewRequestListResponse, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.CanSeeCompany(query.CompanyID) {
		return nil, fmt.Errorf("%w: company %s", apperrors.ErrForbidden, query.CompanyID)
	}

	requests, err := s.requestRepo.FindRequestsByCompany(ctx, query.CompanyID)
	if err != nil {
		return nil, err
	}

	// Bulk sends stamp one timestamp onto the whole batch, so ties are the
	// normal case. The id tiebreak keeps the order total and the cursor exact.
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}
		return requests[i].ID > requests[j].ID
	})

	if query.Cursor != "" {
		before, lastID, err := pagination.DecodeDateBasedToken(query.Cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		idx := sort.Search(len(requests), func(i int) bool {
			if requests[i].CreatedAt.Equal(before) {
				return requests[i].ID < lastID
			}
			return requests[i].CreatedAt.Before(before)
		})
		requests = requests[idx:]
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}

	resp := &dto.ReviewRequestListResponse{}
	page := requests
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		resp.NextCursor = pagination.EncodeDateBasedToken(last.CreatedAt, last.ID)
	}
	resp.Requests = make([]dto.ReviewRequestResponse, 0, len(page))
	for _, r := range page {
		resp.Requests = append(resp.Requests, dto.ToReviewRequestResponse(r))
	}
	return resp, nil
}

// scopeChecks resolves a bulk request into its eligible (visible, unreviewed)
// checks plus a human-readable scope label for the confirmation summary.
func (s *reviewService) scopeChecks(ctx context.Context, actor domain.User, req dto.BulkReviewRequest) ([]domain.Check, string, error) {
	if len(req.CheckIDs) > 0 {
		checks, err := s.checkRepo.FindChecksByIDs(ctx, req.CheckIDs)
		if err != nil {
			return nil, "", err
		}
		var eligible []domain.Check
		for _, c := range checks {
			if !c.Reviewed && actor.CanSeeCompany(c.CompanyID) {
				eligible = append(eligible, c)
			}
		}
		return eligible, scopeLabelSelection, nil
	}

	if req.CompanyID == "" || req.WeekKey == "" {
		return nil, "", fmt.Errorf("%w: bulk scope needs companyId and weekKey, or explicit checkIds", apperrors.ErrValidation)
	}
	if !actor.CanSeeCompany(req.CompanyID) {
		return nil, "", fmt.Errorf("%w: company %s", apperrors.ErrForbidden, req.CompanyID)
	}

	checks, err := s.checkRepo.FindUnreviewedByCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, "", err
	}
	var eligible []domain.Check
	for _, c := range checks {
		if c.WeekKey() == req.WeekKey {
			eligible = append(eligible, c)
		}
	}
	return eligible, scopeLabelCompanyWeek, nil
}

// confirmation returns the two-phase gate result when the bulk call must not
// commit yet: either the scope is empty (no-op success) or confirmation is
// still pending. Returns nil when the caller should proceed with the batch.
func (s *reviewService) confirmation(checks []domain.Check, label string, req dto.BulkReviewRequest, verb string) *dto.BulkConfirmation {
	if len(checks) == 0 {
		return &dto.BulkConfirmation{
			TargetCount: 0,
			CompanyID:   req.CompanyID,
			WeekKey:     req.WeekKey,
			ScopeLabel:  label,
			Committed:   false,
			Message:     "no eligible checks in scope, nothing to do",
		}
	}
	if !req.Confirm {
		return &dto.BulkConfirmation{
			TargetCount: len(checks),
			CompanyID:   req.CompanyID,
			WeekKey:     req.WeekKey,
			ScopeLabel:  label,
			Committed:   false,
			Message:     fmt.Sprintf("confirm to apply %s to %d checks (%s)", verb, len(checks), label),
		}
	}
	return nil
}

func (s *reviewService) invalidate() {
	if s.invalidator != nil {
		s.invalidator.InvalidateCache()
	}
}
