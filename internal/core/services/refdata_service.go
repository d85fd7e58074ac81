package services

import (
	"context"
	"fmt"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
)

// refDataService serves read-only company and client reference data within
// the actor's visibility.
type refDataService struct {
	companyRepo portsrepo.CompanyRepository
	clientRepo  portsrepo.ClientRepository
	userRepo    portsrepo.UserRepository
}

// NewRefDataService creates the reference-data service.
func NewRefDataService(companyRepo portsrepo.CompanyRepository, clientRepo portsrepo.ClientRepository, userRepo portsrepo.UserRepository) portssvc.RefDataSvcFacade {
	return &refDataService{
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
	}
}

var _ portssvc.RefDataSvcFacade = (*refDataService)(nil)

func (s *refDataService) ListCompanies(ctx context.Context, actorID string) ([]domain.Company, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return s.companyRepo.FindAllCompanies(ctx)
	}
	return s.companyRepo.FindCompaniesByIDs(ctx, actor.CompanyIDs)
}

func (s *refDataService) ListClients(ctx context.Context, actorID string, companyID string) ([]domain.Client, error) {
	actor, err := loadActor(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	if companyID != "" {
		if !actor.CanSeeCompany(companyID) {
			return nil, fmt.Errorf("%w: company %s", apperrors.ErrForbidden, companyID)
		}
		return s.clientRepo.FindClientsByCompany(ctx, companyID)
	}

	if actor.IsAdmin() {
		companies, err := s.companyRepo.FindAllCompanies(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(companies))
		for _, c := range companies {
			ids = append(ids, c.CompanyID)
		}
		return s.clientRepo.FindClientsByCompanies(ctx, ids)
	}
	return s.clientRepo.FindClientsByCompanies(ctx, actor.CompanyIDs)
}
