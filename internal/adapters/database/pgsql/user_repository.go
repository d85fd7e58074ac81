package pgsql

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	"github.com/crewpay/crewpay_backend/internal/utils/mapping"
)

// UserRepository implements the read-only user reference-data port.
type UserRepository struct {
	store   portsrepo.DocumentStore
	fetcher *ChunkedFetcher
}

// NewUserRepository creates a user repository.
func NewUserRepository(store portsrepo.DocumentStore, fetcher *ChunkedFetcher) portsrepo.UserRepository {
	return &UserRepository{store: store, fetcher: fetcher}
}

// Ensure UserRepository implements the port.
var _ portsrepo.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	doc, err := r.store.GetByID(ctx, portsrepo.CollectionUsers, userID)
	if err != nil {
		return nil, err
	}
	u, err := mapping.ToUser(*doc)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindAllUsers(ctx context.Context) ([]domain.User, error) {
	docs, err := r.store.List(ctx, portsrepo.CollectionUsers, nil)
	if err != nil {
		return nil, err
	}
	return mapping.ToUserSlice(docs)
}

func (r *UserRepository) FindUsersByUIDs(ctx context.Context, uids []string) ([]domain.User, error) {
	docs, err := r.fetcher.FetchByMembership(ctx, portsrepo.CollectionUsers, "uid", uids, nil)
	if err != nil {
		return nil, err
	}
	return mapping.ToUserSlice(docs)
}

func (r *UserRepository) FindUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	docs, err := r.fetcher.FetchByIDBatch(ctx, portsrepo.CollectionUsers, ids)
	if err != nil {
		return nil, err
	}
	return mapping.ToUserSlice(docs)
}
