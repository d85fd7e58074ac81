package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/dto"
	"github.com/crewpay/crewpay_backend/internal/middleware"
)

// printService coordinates PDF export with the paid-state side effect.
// Export success is the trigger for marking paid; the marking itself is
// best-effort and never rolls the already-delivered export back.
type printService struct {
	exporter  portssvc.PDFExporter
	review    portssvc.ReviewSvcFacade
	checkRepo portsrepo.CheckRepository
	userRepo  portsrepo.UserRepository
}

// NewPrintService creates the print orchestrator.
func NewPrintService(
	exporter portssvc.PDFExporter,
	review portssvc.ReviewSvcFacade,
	checkRepo portsrepo.CheckRepository,
	userRepo portsrepo.UserRepository,
) portssvc.PrintSvcFacade {
	return &printService{
		exporter:  exporter,
		review:    review,
		checkRepo: checkRepo,
		userRepo:  userRepo,
	}
}

var _ portssvc.PrintSvcFacade = (*printService)(nil)

// PrintChecks exports a PDF for the visible subset of the requested checks
// and then marks exactly those checks paid. The canPrintChecks capability
// gates this path only; review transitions are unaffected by it.
func (s *printService) PrintChecks(ctx context.Context, actorID string, req dto.PrintRequest) (*dto.PrintResult, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.CanPrintChecks {
		return nil, fmt.Errorf("%w: printing requires the canPrintChecks capability", apperrors.ErrForbidden)
	}

	checks, err := s.checkRepo.FindChecksByIDs(ctx, req.CheckIDs)
	if err != nil {
		return nil, err
	}
	var visibleIDs []string
	for _, c := range checks {
		if actor.CanSeeCompany(c.CompanyID) {
			visibleIDs = append(visibleIDs, c.ID)
		}
	}
	if len(visibleIDs) == 0 {
		return nil, fmt.Errorf("%w: no printable checks in selection", apperrors.ErrEmptyScope)
	}

	pdf, err := s.exporter.ExportPDF(ctx, visibleIDs, req.WeekKey)
	if err != nil {
		return nil, fmt.Errorf("pdf export failed for week %s: %w", req.WeekKey, err)
	}

	result := &dto.PrintResult{PDF: pdf}

	// Export already succeeded and was delivered; a failure here is logged
	// and reported, never used to fail the print.
	marks, err := s.review.MarkPaid(ctx, actorID, visibleIDs)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("paid marking after print failed",
			slog.String("week_key", req.WeekKey), slog.Int("check_count", len(visibleIDs)),
			slog.String("error", err.Error()))
		result.FailedMarks = len(visibleIDs)
		return result, nil
	}
	result.MarkedPaid = marks.Marked
	result.AlreadyPaid = marks.AlreadyPaid
	result.FailedMarks = len(marks.Failed)
	return result, nil
}
