package pgsql

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	"github.com/crewpay/crewpay_backend/internal/utils/mapping"
)

// CheckRepository implements the check repository port over the document store.
type CheckRepository struct {
	store   portsrepo.DocumentStore
	fetcher *ChunkedFetcher
}

// NewCheckRepository creates a check repository.
func NewCheckRepository(store portsrepo.DocumentStore, fetcher *ChunkedFetcher) portsrepo.CheckRepository {
	return &CheckRepository{store: store, fetcher: fetcher}
}

// Ensure CheckRepository implements the port.
var _ portsrepo.CheckRepository = (*CheckRepository)(nil)

func (r *CheckRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	doc, err := r.store.GetByID(ctx, portsrepo.CollectionChecks, checkID)
	if err != nil {
		return nil, err
	}
	c, err := mapping.ToCheck(*doc)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CheckRepository) FindChecksByIDs(ctx context.Context, checkIDs []string) ([]domain.Check, error) {
	docs, err := r.fetcher.FetchByIDBatch(ctx, portsrepo.CollectionChecks, checkIDs)
	if err != nil {
		return nil, err
	}
	return mapping.ToCheckSlice(docs)
}

func (r *CheckRepository) FindAllChecks(ctx context.Context) ([]domain.Check, error) {
	docs, err := r.store.List(ctx, portsrepo.CollectionChecks, nil)
	if err != nil {
		return nil, err
	}
	return mapping.ToCheckSlice(docs)
}

func (r *CheckRepository) FindChecksByCompanies(ctx context.Context, companyIDs []string) ([]domain.Check, error) {
	docs, err := r.fetcher.FetchByMembership(ctx, portsrepo.CollectionChecks, "companyId", companyIDs, nil)
	if err != nil {
		return nil, err
	}
	return mapping.ToCheckSlice(docs)
}

func (r *CheckRepository) FindUnreviewedByCompany(ctx context.Context, companyID string) ([]domain.Check, error) {
	docs, err := r.store.List(ctx, portsrepo.CollectionChecks, portsrepo.Filters{
		"companyId": companyID,
		"reviewed":  false,
	})
	if err != nil {
		return nil, err
	}
	return mapping.ToCheckSlice(docs)
}

func (r *CheckRepository) SetReviewed(ctx context.Context, checkID string, reviewed bool) error {
	return r.store.Update(ctx, portsrepo.CollectionChecks, checkID, map[string]any{"reviewed": reviewed})
}

func (r *CheckRepository) SetPaid(ctx context.Context, checkID string, paid bool) error {
	return r.store.Update(ctx, portsrepo.CollectionChecks, checkID, map[string]any{"paid": paid})
}

func (r *CheckRepository) SetReviewedOp(checkID string, reviewed bool) portsrepo.BatchOp {
	return portsrepo.BatchOp{
		Kind:       portsrepo.BatchUpdate,
		Collection: portsrepo.CollectionChecks,
		ID:         checkID,
		Fields:     map[string]any{"reviewed": reviewed},
	}
}
