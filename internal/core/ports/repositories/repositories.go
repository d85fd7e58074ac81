package repositories

// RepositoryProvider holds instances of all the repositories plus the raw
// store, which services need for atomic cross-collection batch writes.
type RepositoryProvider struct {
	Store             DocumentStore
	CheckRepo         CheckRepository
	ReviewRequestRepo ReviewRequestRepository
	UserRepo          UserRepository
	CompanyRepo       CompanyRepository
	ClientRepo        ClientRepository
}
