package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// collectionTables maps logical collection names onto their backing tables.
// Every collection is stored the same way: (id text primary key, doc jsonb).
var collectionTables = map[string]string{
	portsrepo.CollectionChecks:         "checks",
	portsrepo.CollectionReviewRequests: "review_requests",
	portsrepo.CollectionUsers:          "users",
	portsrepo.CollectionCompanies:      "companies",
	portsrepo.CollectionClients:        "clients",
}

// PgxDocumentStore implements the DocumentStore port on PostgreSQL jsonb
// tables. Equality filters use jsonb containment; membership queries are
// capped at the store limit, mirroring the query layer this engine was built
// against. Batches run inside one transaction, so they apply fully or not at all.
type PgxDocumentStore struct {
	pool *pgxpool.Pool
}

// NewPgxDocumentStore creates a document store backed by the given pool.
func NewPgxDocumentStore(pool *pgxpool.Pool) *PgxDocumentStore {
	return &PgxDocumentStore{pool: pool}
}

// Ensure PgxDocumentStore implements the DocumentStore port.
var _ portsrepo.DocumentStore = (*PgxDocumentStore)(nil)

func tableFor(collection string) (string, error) {
	table, ok := collectionTables[collection]
	if !ok {
		return "", fmt.Errorf("%w: unknown collection %q", apperrors.ErrValidation, collection)
	}
	return table, nil
}

func (s *PgxDocumentStore) List(ctx context.Context, collection string, filters portsrepo.Filters) ([]portsrepo.Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s`, table)
	args := []any{}
	if len(filters) > 0 {
		filterJSON, err := json.Marshal(filters)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding filters for %q: %v", apperrors.ErrValidation, collection, err)
		}
		query += ` WHERE doc @> $1`
		args = append(args, filterJSON)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %q: %v", apperrors.ErrStoreRead, collection, err)
	}
	defer rows.Close()
	return scanDocuments(rows, collection)
}

func (s *PgxDocumentStore) MembershipList(ctx context.Context, collection string, field string, values []string, filters portsrepo.Filters) ([]portsrepo.Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) > portsrepo.MembershipQueryLimit {
		return nil, fmt.Errorf("%w: membership query on %q carries %d values, limit is %d",
			apperrors.ErrValidation, collection, len(values), portsrepo.MembershipQueryLimit)
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s WHERE doc->>$1 = ANY($2)`, table)
	args := []any{field, values}
	if len(filters) > 0 {
		filterJSON, err := json.Marshal(filters)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding filters for %q: %v", apperrors.ErrValidation, collection, err)
		}
		query += ` AND doc @> $3`
		args = append(args, filterJSON)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: membership query on %q.%s: %v", apperrors.ErrStoreRead, collection, field, err)
	}
	defer rows.Close()
	return scanDocuments(rows, collection)
}

func (s *PgxDocumentStore) GetByID(ctx context.Context, collection string, id string) (*portsrepo.Document, error) {
	table, err := tableFor(collection)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, doc FROM %s WHERE id = $1`, table)
	doc := portsrepo.Document{}
	err = s.pool.QueryRow(ctx, query, id).Scan(&doc.ID, &doc.Fields)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s/%s: %v", apperrors.ErrStoreRead, collection, id, err)
	}
	return &doc, nil
}

func (s *PgxDocumentStore) Create(ctx context.Context, collection string, fields map[string]any) (string, error) {
	table, err := tableFor(collection)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	docJSON, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: encoding document for %q: %v", apperrors.ErrValidation, collection, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, table)
	if _, err := s.pool.Exec(ctx, query, id, docJSON); err != nil {
		return "", fmt.Errorf("creating %s document: %w", collection, err)
	}
	return id, nil
}

func (s *PgxDocumentStore) Update(ctx context.Context, collection string, id string, partial map[string]any) error {
	table, err := tableFor(collection)
	if err != nil {
		return err
	}

	partialJSON, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("%w: encoding partial update for %s/%s: %v", apperrors.ErrValidation, collection, id, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2 WHERE id = $1`, table)
	tag, err := s.pool.Exec(ctx, query, id, partialJSON)
	if err != nil {
		return fmt.Errorf("updating %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
	}
	return nil
}

// Batch applies every operation inside one transaction. Any failure rolls the
// whole batch back and surfaces as ErrBatchWrite with the store untouched.
func (s *PgxDocumentStore) Batch(ctx context.Context, ops []portsrepo.BatchOp) error {
	if len(ops) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", apperrors.ErrBatchWrite, err)
	}
	defer tx.Rollback(ctx)

	for _, op := range ops {
		table, err := tableFor(op.Collection)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrBatchWrite, err)
		}
		docJSON, err := json.Marshal(op.Fields)
		if err != nil {
			return fmt.Errorf("%w: encoding %s/%s: %v", apperrors.ErrBatchWrite, op.Collection, op.ID, err)
		}

		switch op.Kind {
		case portsrepo.BatchCreate:
			query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, table)
			if _, err := tx.Exec(ctx, query, op.ID, docJSON); err != nil {
				return fmt.Errorf("%w: creating %s/%s: %v", apperrors.ErrBatchWrite, op.Collection, op.ID, err)
			}
		case portsrepo.BatchUpdate:
			query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2 WHERE id = $1`, table)
			tag, err := tx.Exec(ctx, query, op.ID, docJSON)
			if err != nil {
				return fmt.Errorf("%w: updating %s/%s: %v", apperrors.ErrBatchWrite, op.Collection, op.ID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: %s/%s does not exist", apperrors.ErrBatchWrite, op.Collection, op.ID)
			}
		default:
			return fmt.Errorf("%w: unknown op kind %q", apperrors.ErrBatchWrite, op.Kind)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: committing: %v", apperrors.ErrBatchWrite, err)
	}
	return nil
}

func scanDocuments(rows pgx.Rows, collection string) ([]portsrepo.Document, error) {
	var docs []portsrepo.Document
	for rows.Next() {
		doc := portsrepo.Document{}
		if err := rows.Scan(&doc.ID, &doc.Fields); err != nil {
			return nil, fmt.Errorf("%w: scanning %q row: %v", apperrors.ErrStoreRead, collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating %q rows: %v", apperrors.ErrStoreRead, collection, err)
	}
	return docs, nil
}
