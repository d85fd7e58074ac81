package repositories

import "context"

// Collection names of the persisted layout.
const (
	CollectionChecks         = "checks"
	CollectionReviewRequests = "reviewRequest"
	CollectionUsers          = "users"
	CollectionCompanies      = "companies"
	CollectionClients        = "clients"
)

// MembershipQueryLimit is the maximum number of values the store's native
// "field is one of S" query accepts. Larger sets must be chunked.
const MembershipQueryLimit = 10

// Document is one record of a store collection: an opaque id plus its fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// Filters is a set of field equality constraints applied to a query.
type Filters map[string]any

// BatchOpKind discriminates the operations a batch may carry.
type BatchOpKind string

const (
	BatchCreate BatchOpKind = "create"
	BatchUpdate BatchOpKind = "update"
)

// BatchOp is one operation inside an atomic batch write. Creates carry a
// caller-generated id so the whole batch can be assembled before submission.
type BatchOp struct {
	Kind       BatchOpKind
	Collection string
	ID         string
	Fields     map[string]any
}

// DocumentStore is the narrow interface to the underlying document store.
//
// MembershipList enforces MembershipQueryLimit; feeding it a larger value set
// is a programming error and fails validation. Batch is atomic: it either
// fully applies or leaves the store untouched.
type DocumentStore interface {
	List(ctx context.Context, collection string, filters Filters) ([]Document, error)
	MembershipList(ctx context.Context, collection string, field string, values []string, filters Filters) ([]Document, error)
	GetByID(ctx context.Context, collection string, id string) (*Document, error)
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	Update(ctx context.Context, collection string, id string, partial map[string]any) error
	Batch(ctx context.Context, ops []BatchOp) error
}

// BatchRunner is the slice of DocumentStore that services use to submit
// atomic multi-record transitions assembled from repository op builders.
type BatchRunner interface {
	Batch(ctx context.Context, ops []BatchOp) error
}
