package pgsql

import (
	"context"
	"errors"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	portsrepo "github.com/crewpay/crewpay_backend/internal/core/ports/repositories"
	"golang.org/x/sync/errgroup"
)

// idBatchConcurrency bounds the parallel lookups of FetchByIDBatch. Id
// lookups have no store-side size constraint, only a sensible fan-out cap.
const idBatchConcurrency = 8

// ChunkedFetcher performs "field is a member of set S" lookups against a store
// whose native membership query accepts at most MembershipQueryLimit values.
// Oversized value sets are split into consecutive chunks, queried in parallel,
// and merged with duplicate documents filtered out.
type ChunkedFetcher struct {
	store portsrepo.DocumentStore
}

// NewChunkedFetcher creates a fetcher over any DocumentStore.
func NewChunkedFetcher(store portsrepo.DocumentStore) *ChunkedFetcher {
	return &ChunkedFetcher{store: store}
}

// FetchByMembership returns every document whose field value is in values,
// additionally constrained by extra equality filters. An empty value set
// returns immediately without issuing any query.
//
// Chunk queries run concurrently; the merge point waits for all of them, and
// any chunk failure fails the whole fetch, since partial data must not be
// assumed valid.
func (f *ChunkedFetcher) FetchByMembership(ctx context.Context, collection, field string, values []string, extra portsrepo.Filters) ([]portsrepo.Document, error) {
	if len(values) == 0 {
		return nil, nil
	}

	chunks := chunkValues(values, portsrepo.MembershipQueryLimit)
	results := make([][]portsrepo.Document, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			docs, err := f.store.MembershipList(gctx, collection, field, chunk, extra)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Chunks are disjoint on the queried values, so duplicates only appear
	// through store-level duplication. They are filtered regardless.
	seen := make(map[string]int)
	var merged []portsrepo.Document
	for _, docs := range results {
		for _, doc := range docs {
			if idx, ok := seen[doc.ID]; ok {
				merged[idx] = doc
				continue
			}
			seen[doc.ID] = len(merged)
			merged = append(merged, doc)
		}
	}
	return merged, nil
}

// FetchByIDBatch fetches documents by id, in parallel, silently omitting ids
// with no matching record.
func (f *ChunkedFetcher) FetchByIDBatch(ctx context.Context, collection string, ids []string) ([]portsrepo.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	results := make([]*portsrepo.Document, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(idBatchConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			doc, err := f.store.GetByID(gctx, collection, id)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var docs []portsrepo.Document
	for _, doc := range results {
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

// chunkValues splits values into consecutive chunks of at most size elements.
func chunkValues(values []string, size int) [][]string {
	var chunks [][]string
	for len(values) > size {
		chunks = append(chunks, values[:size])
		values = values[size:]
	}
	return append(chunks, values)
}
