package repositories

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
)

// UserReader defines read operations for user reference data.
type UserReader interface {
	// FindUserByID retrieves a specific user by their id.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindAllUsers retrieves the full user set. Privileged callers only; the
	// snapshot feeds the admin path of the user directory.
	FindAllUsers(ctx context.Context) ([]domain.User, error)

	// FindUsersByUIDs retrieves users via the uid field membership query,
	// chunked to the store limit.
	FindUsersByUIDs(ctx context.Context, uids []string) ([]domain.User, error)

	// FindUsersByIDs retrieves users by direct id lookup, omitting ids with no
	// matching record. Fallback path when the uid query mode fails.
	FindUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error)
}

// UserRepository is the user reference-data repository. Read-only: user CRUD
// belongs to the administration surface, not this engine.
type UserRepository interface {
	UserReader
}
