package services

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/dto"
)

// CheckQuerySvcFacade composes visibility scoping, filter predicates, week
// bucketing, and ordering into the final visible check set.
type CheckQuerySvcFacade interface {
	// ListChecks returns the grouped, filtered result set visible to the actor.
	ListChecks(ctx context.Context, actorID string, query dto.CheckQuery) (*dto.CheckListResponse, error)

	// GetCheckBreakdown returns the computed pay lines of one visible check.
	GetCheckBreakdown(ctx context.Context, actorID string, checkID string) (*dto.CheckBreakdownResponse, error)
}

// CacheInvalidator drops the query engine's scoped cache. Mutating services
// call it after a completed transition so the next listing refetches.
type CacheInvalidator interface {
	InvalidateCache()
}
