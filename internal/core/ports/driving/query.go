package driving

import (
	"context"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

// QueryService provides semantic search over the indexed journal.
type QueryService interface {
	// Search embeds the query and returns the top-K most similar chunks,
	// optionally constrained to a date range. An empty index yields an
	// empty slice, never an error.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// ListDates returns the distinct entry dates in the index, ascending.
	ListDates(ctx context.Context) ([]string, error)
}
