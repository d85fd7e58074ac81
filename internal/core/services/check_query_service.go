package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/dto"
	"github.com/crewpay/crewpay_backend/internal/utils/payroll"
	"github.com/shopspring/decimal"
)

// scopeAll is the cache key of the admin everything-visible scope.
const scopeAll = "*"

// checkQueryService composes visibility scoping, filter predicates, week
// bucketing, and ordering into the final visible check set.
//
// It owns the scoped fetch cache: one scope's checks plus their resolved
// creator names, invalidated on scope change, explicit refresh, or a completed
// mutation. Never by a time heuristic.
type checkQueryService struct {
	checkRepo portsrepo.CheckRepository
	userRepo  portsrepo.UserRepository
	directory portssvc.UserDirectorySvc

	mu          sync.Mutex
	cacheScope  string
	cacheChecks []domain.Check
	cacheNames  map[string]string
}

// NewCheckQueryService creates the check query engine.
func NewCheckQueryService(checkRepo portsrepo.CheckRepository, userRepo portsrepo.UserRepository, directory portssvc.UserDirectorySvc) portssvc.CheckQuerySvcFacade {
	return &checkQueryService{
		checkRepo: checkRepo,
		userRepo:  userRepo,
		directory: directory,
	}
}

var (
	_ portssvc.CheckQuerySvcFacade = (*checkQueryService)(nil)
	_ portssvc.CacheInvalidator    = (*checkQueryService)(nil)
)

// InvalidateCache drops the scoped cache. Mutating services call this after a
// completed transition.
func (s *checkQueryService) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheScope = ""
	s.cacheChecks = nil
	s.cacheNames = nil
}

// ListChecks implements portssvc.CheckQuerySvcFacade.
func (s *checkQueryService) ListChecks(ctx context.Context, actorID string, query dto.CheckQuery) (*dto.CheckListResponse, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	scope, visible := visibilityScope(actor, query.CompanyID)
	if !visible {
		// An explicit scope outside the caller's membership yields an empty
		// result, never the foreign company's checks.
		return &dto.CheckListResponse{Weeks: []dto.WeekGroupResponse{}}, nil
	}

	checks, names, err := s.fetchScope(ctx, actor, scope, query.Refresh)
	if err != nil {
		return nil, err
	}

	filtered := filterChecks(checks, names, query)
	return s.buildListing(filtered, names), nil
}

// GetCheckBreakdown implements portssvc.CheckQuerySvcFacade.
func (s *checkQueryService) GetCheckBreakdown(ctx context.Context, actorID string, checkID string) (*dto.CheckBreakdownResponse, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	check, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if !actor.CanSeeCompany(check.CompanyID) {
		// Indistinguishable from absence for callers outside the company.
		return nil, fmt.Errorf("%w: check %s", apperrors.ErrNotFound, checkID)
	}

	breakdown := payroll.ComputeDisplay(*check)
	return &dto.CheckBreakdownResponse{
		CheckID:       check.ID,
		Lines:         toLineResponses(breakdown.Lines),
		ComputedTotal: breakdown.Total.StringFixed(2),
		Amount:        check.Amount.StringFixed(2),
	}, nil
}

// visibilityScope resolves which companies the fetch may touch. The nil scope
// with ok=true means everything (admin). ok=false means the request asked for
// a company outside the caller's visibility.
func visibilityScope(actor domain.User, requestedCompany string) ([]string, bool) {
	if actor.IsAdmin() {
		if requestedCompany != "" {
			return []string{requestedCompany}, true
		}
		return nil, true
	}

	if requestedCompany != "" {
		if !actor.CanSeeCompany(requestedCompany) {
			return nil, false
		}
		return []string{requestedCompany}, true
	}
	if len(actor.CompanyIDs) == 0 {
		return nil, false
	}
	return actor.CompanyIDs, true
}

// fetchScope returns the checks and resolved creator names for a visibility
// scope, reusing the cache when the scope matches and no refresh was asked.
func (s *checkQueryService) fetchScope(ctx context.Context, actor domain.User, scope []string, refresh bool) ([]domain.Check, map[string]string, error) {
	key := scopeAll
	if scope != nil {
		sorted := append([]string(nil), scope...)
		sort.Strings(sorted)
		key = strings.Join(sorted, ",")
	}

	s.mu.Lock()
	if !refresh && key == s.cacheScope && s.cacheChecks != nil {
		checks, names := s.cacheChecks, s.cacheNames
		s.mu.Unlock()
		return checks, names, nil
	}
	s.mu.Unlock()

	var checks []domain.Check
	var err error
	if scope == nil {
		checks, err = s.checkRepo.FindAllChecks(ctx)
	} else {
		checks, err = s.checkRepo.FindChecksByCompanies(ctx, scope)
	}
	if err != nil {
		return nil, nil, err
	}

	names, err := s.resolveCreators(ctx, actor, checks)
	if err != nil {
		return nil, nil, err
	}

	// Last completed fetch wins; a stale in-flight fetch for another scope
	// simply overwrites and the next call for its scope refetches.
	s.mu.Lock()
	s.cacheScope = key
	s.cacheChecks = checks
	s.cacheNames = names
	s.mu.Unlock()
	return checks, names, nil
}

func (s *checkQueryService) resolveCreators(ctx context.Context, actor domain.User, checks []domain.Check) (map[string]string, error) {
	var creatorIDs []string
	for _, c := range checks {
		creatorIDs = append(creatorIDs, c.CreatedBy)
	}

	var snapshot []domain.User
	if actor.IsAdmin() {
		var err error
		snapshot, err = s.userRepo.FindAllUsers(ctx)
		if err != nil {
			return nil, err
		}
	}
	return s.directory.Resolve(ctx, creatorIDs, actor.IsAdmin(), snapshot)
}

// filterChecks applies the predicate set. Visibility was already enforced.
func filterChecks(checks []domain.Check, names map[string]string, query dto.CheckQuery) []domain.Check {
	search := strings.ToLower(strings.TrimSpace(query.Search))
	var out []domain.Check
	for _, c := range checks {
		if query.Week != "" && c.WeekKey() != query.Week {
			continue
		}
		if query.CreatedBy != "" && c.CreatedBy != query.CreatedBy {
			continue
		}
		if query.ClientID != "" && !checkInvolvesClient(c, query.ClientID) {
			continue
		}
		if query.UnreviewedOnly && c.Reviewed {
			continue
		}
		if search != "" && !matchesSearch(c, names, search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func checkInvolvesClient(c domain.Check, clientID string) bool {
	if c.ClientID == clientID {
		return true
	}
	for _, rel := range c.RelationshipDetails {
		if rel.ClientID == clientID {
			return true
		}
	}
	return false
}

func matchesSearch(c domain.Check, names map[string]string, search string) bool {
	if strings.Contains(strings.ToLower(c.EmployeeName), search) {
		return true
	}
	return strings.Contains(strings.ToLower(names[c.CreatedBy]), search)
}

// buildListing groups the filtered checks into week buckets ordered by
// descending bucket date, checks within a bucket by descending check number.
func (s *checkQueryService) buildListing(checks []domain.Check, names map[string]string) *dto.CheckListResponse {
	buckets := make(map[string][]domain.Check)
	for _, c := range checks {
		key := c.WeekKey()
		buckets[key] = append(buckets[key], c)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// Week keys are zero-padded dates, so lexicographic order is date order.
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	resp := &dto.CheckListResponse{Weeks: make([]dto.WeekGroupResponse, 0, len(keys))}
	for _, key := range keys {
		group := buckets[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CheckNumber > group[j].CheckNumber
		})

		weekTotal := decimal.Zero
		checksResp := make([]dto.CheckResponse, 0, len(group))
		for _, c := range group {
			weekTotal = weekTotal.Add(c.Amount)
			checksResp = append(checksResp, toCheckResponse(c, names))
		}

		weekDate, err := domain.WeekKeyDate(key)
		label := key
		if err == nil {
			label = domain.ISOWeekLabel(weekDate)
		}
		resp.Weeks = append(resp.Weeks, dto.WeekGroupResponse{
			WeekKey: key,
			Label:   label,
			Total:   weekTotal.StringFixed(2),
			Checks:  checksResp,
		})
		resp.CheckCount += len(group)
	}
	return resp
}

func toCheckResponse(c domain.Check, names map[string]string) dto.CheckResponse {
	breakdown := payroll.ComputeDisplay(c)

	var clientNames []string
	for _, rel := range c.RelationshipDetails {
		if rel.ClientName != "" {
			clientNames = append(clientNames, rel.ClientName)
		}
	}

	return dto.CheckResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		EmployeeName:  c.EmployeeName,
		Date:          c.Date,
		WeekKey:       c.WeekKey(),
		CheckNumber:   c.CheckNumber,
		CreatedBy:     c.CreatedBy,
		CreatorName:   names[c.CreatedBy],
		ClientNames:   clientNames,
		Reviewed:      c.Reviewed,
		Paid:          c.Paid,
		Amount:        c.Amount.StringFixed(2),
		ComputedTotal: breakdown.Total.StringFixed(2),
		Lines:         toLineResponses(breakdown.Lines),
	}
}

func toLineResponses(lines []payroll.Line) []dto.PayLineResponse {
	out := make([]dto.PayLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.PayLineResponse{
			Label:     l.Label,
			Quantity:  l.Quantity.String(),
			Rate:      l.Rate.StringFixed(2),
			Subtotal:  l.Subtotal.StringFixed(2),
			Estimated: l.Estimated,
		})
	}
	return out
}
