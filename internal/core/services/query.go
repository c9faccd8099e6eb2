package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driving"
	"github.com/quillstone-labs/daybook-cli/internal/logger"
)

// Ensure QueryEngine implements the interface.
var _ driving.QueryService = (*QueryEngine)(nil)

// DefaultK is the default number of search results.
const DefaultK = 5

// QueryEngine embeds queries, searches the vector index and ranks the
// results.
type QueryEngine struct {
	embedding driven.EmbeddingService
	index     driven.VectorIndex
}

// NewQueryEngine creates a new query engine.
func NewQueryEngine(embedding driven.EmbeddingService, index driven.VectorIndex) *QueryEngine {
	return &QueryEngine{
		embedding: embedding,
		index:     index,
	}
}

// Search embeds the query and returns the top-K chunks, most similar first.
// Ties in similarity are broken by more recent entry date, then by lower
// chunk index. An empty index or an empty query returns an empty slice.
func (e *QueryEngine) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	logger.Section("Search")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}

	k := opts.K
	if k <= 0 {
		k = DefaultK
	}

	if e.embedding == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	total, err := e.index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: count: %w", domain.ErrIndexUnavailable, err)
	}
	if total == 0 {
		logger.Debug("Index is empty")
		return []domain.SearchResult{}, nil
	}

	vector, err := e.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(vector))

	filter := driven.MetaFilter{Range: opts.DateRange}
	hits, err := e.fetchFiltered(ctx, vector, k, filter, total)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, domain.SearchResult{
			Text:       hit.Text,
			EntryDate:  hit.Meta.EntryDate,
			ChunkIndex: hit.Meta.ChunkIndex,
			Score:      hit.Score,
		})
	}

	rankResults(results)
	if len(results) > k {
		results = results[:k]
	}

	logger.Info("Search: %d results", len(results))
	return results, nil
}

// fetchFiltered queries the index with the filter pushed down, then
// re-checks the date constraint on what comes back. An index that honours
// the filter satisfies k on the first pass; one that only post-filters is
// handled by over-fetching with a growing k until k results pass the filter
// or the whole index has been fetched.
func (e *QueryEngine) fetchFiltered(
	ctx context.Context,
	vector []float32,
	k int,
	filter driven.MetaFilter,
	total int,
) ([]driven.VectorHit, error) {
	fetch := k

	for {
		hits, err := e.index.Query(ctx, vector, fetch, filter)
		if err != nil {
			return nil, fmt.Errorf("%w: query: %w", domain.ErrIndexUnavailable, err)
		}

		kept := hits[:0]
		for _, hit := range hits {
			if filter.Matches(hit.Meta.EntryDate) {
				kept = append(kept, hit)
			}
		}

		if len(kept) >= k || fetch >= total {
			return kept, nil
		}

		logger.Debug("Over-fetch: %d of %d passed the filter, widening to %d", len(kept), fetch, fetch*4)
		fetch *= 4
		if fetch > total {
			fetch = total
		}
	}
}

// ListDates returns the distinct entry dates in the index, ascending.
func (e *QueryEngine) ListDates(ctx context.Context) ([]string, error) {
	metas, err := e.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", domain.ErrIndexUnavailable, err)
	}

	seen := make(map[string]bool, len(metas))
	dates := make([]string, 0, len(metas))
	for _, meta := range metas {
		if !seen[meta.EntryDate] {
			seen[meta.EntryDate] = true
			dates = append(dates, meta.EntryDate)
		}
	}

	sort.Strings(dates)
	return dates, nil
}

// rankResults orders by score descending, breaking ties by more recent
// entry date, then by lower chunk index.
func rankResults(results []domain.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].EntryDate != results[j].EntryDate {
			return results[i].EntryDate > results[j].EntryDate
		}
		return results[i].ChunkIndex < results[j].ChunkIndex
	})
}
