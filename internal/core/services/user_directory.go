package services

import (
	"context"
	"log/slog"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/middleware"
)

// fallbackPrefixLen is how much of an unresolvable id makes it into the
// synthesized display label.
const fallbackPrefixLen = 8

// userDirectory resolves creator ids to display names.
type userDirectory struct {
	userRepo portsrepo.UserRepository
}

// NewUserDirectory creates a user directory over the user repository.
func NewUserDirectory(userRepo portsrepo.UserRepository) portssvc.UserDirectorySvc {
	return &userDirectory{userRepo: userRepo}
}

var _ portssvc.UserDirectorySvc = (*userDirectory)(nil)

// Resolve maps every id to a display name. Admin callers already hold the full
// user snapshot, so no fetch happens; restricted callers resolve through the
// uid membership query, then direct id lookup, and finally a synthesized
// "User-XXXXXXXX" label so the caller never sees an empty value.
func (s *userDirectory) Resolve(ctx context.Context, ids []string, callerIsAdmin bool, snapshot []domain.User) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	ids = dedupe(ids)
	if len(ids) == 0 {
		return names, nil
	}

	if callerIsAdmin {
		byID := make(map[string]domain.User, len(snapshot))
		for _, u := range snapshot {
			byID[u.UserID] = u
		}
		for _, id := range ids {
			if u, ok := byID[id]; ok {
				names[id] = u.DisplayName()
			} else {
				names[id] = fallbackLabel(id)
			}
		}
		return names, nil
	}

	logger := middleware.GetLoggerFromCtx(ctx)

	users, err := s.userRepo.FindUsersByUIDs(ctx, ids)
	if err != nil {
		// The uid query mode can fail on stores where the field is unindexed
		// or restricted; the direct-id path below covers everything then.
		logger.Warn("uid membership lookup failed, falling back to id fetch", slog.String("error", err.Error()))
		users = nil
	}
	for _, u := range users {
		names[u.UserID] = u.DisplayName()
	}

	var missing []string
	for _, id := range ids {
		if _, ok := names[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		fallbackUsers, err := s.userRepo.FindUsersByIDs(ctx, missing)
		if err != nil {
			logger.Warn("direct id lookup failed", slog.Int("ids", len(missing)), slog.String("error", err.Error()))
		}
		for _, u := range fallbackUsers {
			names[u.UserID] = u.DisplayName()
		}
	}

	for _, id := range ids {
		if _, ok := names[id]; !ok {
			names[id] = fallbackLabel(id)
		}
	}
	return names, nil
}

func fallbackLabel(id string) string {
	if len(id) > fallbackPrefixLen {
		id = id[:fallbackPrefixLen]
	}
	return "User-" + id
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
