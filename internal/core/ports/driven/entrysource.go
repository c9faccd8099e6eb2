package driven

import (
	"context"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

// EntrySource provides the raw dated entries to ingest. It is owned by the
// OCR pipeline; the engine only reads from it.
type EntrySource interface {
	// ListEntries returns every entry currently available, ordered by date.
	ListEntries(ctx context.Context) ([]domain.Entry, error)
}

// WatchableEntrySource is an EntrySource that can report when new entries
// appear, so ingestion can run continuously.
type WatchableEntrySource interface {
	EntrySource

	// Watch blocks until ctx is cancelled, invoking onChange whenever the
	// set of entries may have changed. Notifications are coalesced; the
	// callback re-lists entries itself.
	Watch(ctx context.Context, onChange func()) error
}
