package services

import (
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, exporter portssvc.PDFExporter) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Directory = NewUserDirectory(repos.UserRepo)
	container.Query = NewCheckQueryService(repos.CheckRepo, repos.UserRepo, container.Directory)

	// The query engine owns the scoped cache; mutating services invalidate it
	// after a completed transition.
	invalidator := container.Query.(portssvc.CacheInvalidator)

	container.Review = NewReviewService(repos.CheckRepo, repos.ReviewRequestRepo, repos.UserRepo, repos.Store, invalidator)
	container.Print = NewPrintService(exporter, container.Review, repos.CheckRepo, repos.UserRepo)
	container.RefData = NewRefDataService(repos.CompanyRepo, repos.ClientRepo, repos.UserRepo)

	return container
}

// Helper to check interface implementations at compile time.
var (
	_ portssvc.CheckQuerySvcFacade = (*checkQueryService)(nil)
	_ portssvc.ReviewSvcFacade     = (*reviewService)(nil)
	_ portssvc.PrintSvcFacade      = (*printService)(nil)
)
