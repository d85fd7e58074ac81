package repositories

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/core/domain"
)

// CompanyReader defines read operations for company reference data.
type CompanyReader interface {
	// FindAllCompanies retrieves every company.
	FindAllCompanies(ctx context.Context) ([]domain.Company, error)

	// FindCompaniesByIDs retrieves the companies whose ids appear in ids,
	// chunking as needed. Unknown ids are omitted.
	FindCompaniesByIDs(ctx context.Context, ids []string) ([]domain.Company, error)
}

// ClientReader defines read operations for client reference data.
type ClientReader interface {
	// FindClientsByCompany retrieves the clients of one company.
	FindClientsByCompany(ctx context.Context, companyID string) ([]domain.Client, error)

	// FindClientsByCompanies retrieves the clients of every listed company.
	FindClientsByCompanies(ctx context.Context, companyIDs []string) ([]domain.Client, error)
}

// CompanyRepository is the read-only company repository.
type CompanyRepository interface {
	CompanyReader
}

// ClientRepository is the read-only client repository.
type ClientRepository interface {
	ClientReader
}
