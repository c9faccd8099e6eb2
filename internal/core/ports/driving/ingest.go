// Package driving provides interfaces for external actors (primary/inbound ports).
package driving

import (
	"context"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

// IngestOptions configures an ingestion run.
type IngestOptions struct {
	// Force deletes and re-ingests entries whose date is already indexed.
	// By default such entries are skipped, which means an entry whose text
	// changed after first ingestion stays stale until forced.
	Force bool

	// MaxWords overrides the chunk word budget (default 500).
	MaxWords int
}

// Ingestor converges the vector index to match the entry corpus.
type Ingestor interface {
	// Ingest reads entries, diffs them against the index and applies the
	// required inserts and deletes. It always returns a summary, even when
	// individual entries or chunks failed; only connectivity-level failures
	// of the source or the index abort the run.
	Ingest(ctx context.Context, opts IngestOptions) (*domain.IngestResult, error)
}
