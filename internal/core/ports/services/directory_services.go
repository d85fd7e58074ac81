package services

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
)

// UserDirectorySvc resolves creator ids to display names. Admin callers
// resolve from the snapshot they already hold; restricted callers trigger
// chunked lookups with synthesized fallback labels for unresolvable ids, so
// consumers never render an empty name.
type UserDirectorySvc interface {
	Resolve(ctx context.Context, ids []string, callerIsAdmin bool, snapshot []domain.User) (map[string]string, error)
}

// RefDataSvcFacade serves read-only company and client reference data within
// the actor's visibility.
type RefDataSvcFacade interface {
	ListCompanies(ctx context.Context, actorID string) ([]domain.Company, error)
	ListClients(ctx context.Context, actorID string, companyID string) ([]domain.Client, error)
}
