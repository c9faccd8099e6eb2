package driving

import (
	"context"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

// ClearConfirmation is the token callers must pass to AdminService.Clear.
// Guards against accidental destructive calls from automation.
const ClearConfirmation = "DELETE ALL"

// AdminService provides listing, deletion and statistics over the index.
type AdminService interface {
	// ListEntries returns per-date record counts and word counts, ascending
	// by date.
	ListEntries(ctx context.Context) ([]domain.EntrySummary, error)

	// Stats returns aggregate statistics over the index.
	Stats(ctx context.Context) (*domain.IndexStats, error)

	// DeleteEntry removes all records for the date and returns how many
	// were removed. A date with no records is not an error.
	DeleteEntry(ctx context.Context, date string) (int, error)

	// Clear removes every record. It refuses with
	// domain.ErrConfirmationRequired unless confirm equals
	// ClearConfirmation, and returns how many records were removed.
	Clear(ctx context.Context, confirm string) (int, error)
}
