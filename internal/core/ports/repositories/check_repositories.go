package repositories

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
)

// CheckReader defines read operations for check data.
type CheckReader interface {
	// FindCheckByID retrieves a specific check by its id.
	FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error)

	// FindChecksByIDs retrieves the checks whose ids appear in checkIDs.
	// Ids with no matching record are silently omitted.
	FindChecksByIDs(ctx context.Context, checkIDs []string) ([]domain.Check, error)

	// FindAllChecks retrieves every check. Admin visibility path only.
	FindAllChecks(ctx context.Context) ([]domain.Check, error)

	// FindChecksByCompanies retrieves all checks whose companyId is in
	// companyIDs, chunking the membership query as needed.
	FindChecksByCompanies(ctx context.Context, companyIDs []string) ([]domain.Check, error)

	// FindUnreviewedByCompany retrieves a company's checks that have not yet
	// been reviewed.
	FindUnreviewedByCompany(ctx context.Context, companyID string) ([]domain.Check, error)
}

// CheckWriter defines single-record lifecycle writes for checks.
type CheckWriter interface {
	// SetReviewed flips the reviewed flag on one check.
	SetReviewed(ctx context.Context, checkID string, reviewed bool) error

	// SetPaid flips the paid flag on one check.
	SetPaid(ctx context.Context, checkID string, paid bool) error
}

// CheckBatchOps builds batch operations for atomic multi-check transitions.
type CheckBatchOps interface {
	// SetReviewedOp returns the batch operation flipping one check's reviewed flag.
	SetReviewedOp(checkID string, reviewed bool) BatchOp
}

// CheckRepository combines all check repository interfaces.
type CheckRepository interface {
	CheckReader
	CheckWriter
	CheckBatchOps
}
