package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
)

// loadActor resolves the acting user or refuses the action. No mutation may
// be attempted before this succeeds.
func loadActor(ctx context.Context, users portsrepo.UserReader, actorID string) (domain.User, error) {
	if actorID == "" {
		return domain.User{}, apperrors.ErrNotAuthenticated
	}
	user, err := users.FindUserByID(ctx, actorID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.User{}, fmt.Errorf("%w: no user record for %s", apperrors.ErrNotAuthenticated, actorID)
	}
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

// requireAdmin refuses non-admin actors.
func requireAdmin(actor domain.User) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", apperrors.ErrForbidden)
	}
	return nil
}
