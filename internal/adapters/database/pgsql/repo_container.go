package pgsql

import (
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the document store, the chunked fetcher, and all
// typed repositories over one connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	store := NewPgxDocumentStore(pool)
	fetcher := NewChunkedFetcher(store)

	return &portsrepo.RepositoryProvider{
		Store:             store,
		CheckRepo:         NewCheckRepository(store, fetcher),
		ReviewRequestRepo: NewReviewRequestRepository(store),
		UserRepo:          NewUserRepository(store, fetcher),
		CompanyRepo:       NewCompanyRepository(store, fetcher),
		ClientRepo:        NewClientRepository(store, fetcher),
	}
}
