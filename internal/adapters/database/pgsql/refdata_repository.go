package pgsql

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	"github.com/crewpay/crewpay_backend/internal/utils/mapping"
)

// CompanyRepository implements the read-only company reference-data port.
type CompanyRepository struct {
	store   portsrepo.DocumentStore
	fetcher *ChunkedFetcher
}

// NewCompanyRepository creates a company repository.
func NewCompanyRepository(store portsrepo.DocumentStore, fetcher *ChunkedFetcher) portsrepo.CompanyRepository {
	return &CompanyRepository{store: store, fetcher: fetcher}
}

var _ portsrepo.CompanyRepository = (*CompanyRepository)(nil)

func (r *CompanyRepository) FindAllCompanies(ctx context.Context) ([]domain.Company, error) {
	docs, err := r.store.List(ctx, portsrepo.CollectionCompanies, nil)
	if err != nil {
		return nil, err
	}
	companies := make([]domain.Company, 0, len(docs))
	for _, doc := range docs {
		c, err := mapping.ToCompany(doc)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, nil
}

func (r *CompanyRepository) FindCompaniesByIDs(ctx context.Context, ids []string) ([]domain.Company, error) {
	docs, err := r.fetcher.FetchByIDBatch(ctx, portsrepo.CollectionCompanies, ids)
	if err != nil {
		return nil, err
	}
	companies := make([]domain.Company, 0, len(docs))
	for _, doc := range docs {
		c, err := mapping.ToCompany(doc)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, nil
}

// ClientRepository implements the read-only client reference-data port.
type ClientRepository struct {
	store   portsrepo.DocumentStore
	fetcher *ChunkedFetcher
}

// NewClientRepository creates a client repository.
func NewClientRepository(store portsrepo.DocumentStore, fetcher *ChunkedFetcher) portsrepo.ClientRepository {
	return &ClientRepository{store: store, fetcher: fetcher}
}

var _ portsrepo.ClientRepository = (*ClientRepository)(nil)

func (r *ClientRepository) FindClientsByCompany(ctx context.Context, companyID string) ([]domain.Client, error) {
	docs, err := r.store.List(ctx, portsrepo.CollectionClients, portsrepo.Filters{"companyId": companyID})
	if err != nil {
		return nil, err
	}
	return r.toClients(docs)
}

func (r *ClientRepository) FindClientsByCompanies(ctx context.Context, companyIDs []string) ([]domain.Client, error) {
	docs, err := r.fetcher.FetchByMembership(ctx, portsrepo.CollectionClients, "companyId", companyIDs, nil)
	if err != nil {
		return nil, err
	}
	return r.toClients(docs)
}

func (r *ClientRepository) toClients(docs []portsrepo.Document) ([]domain.Client, error) {
	clients := make([]domain.Client, 0, len(docs))
	for _, doc := range docs {
		c, err := mapping.ToClient(doc)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}
