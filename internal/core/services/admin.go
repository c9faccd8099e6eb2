package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driving"
	"github.com/quillstone-labs/daybook-cli/internal/logger"
)

// Ensure IndexAdmin implements the interface.
var _ driving.AdminService = (*IndexAdmin)(nil)

// IndexAdmin provides listing, deletion and statistics over the index.
// Destructive operations take a file-level backup first when the index
// supports it.
type IndexAdmin struct {
	index    driven.VectorIndex
	snapshot driven.Snapshotter
}

// NewIndexAdmin creates a new index admin.
// The snapshot parameter is optional (can be nil): indexes without durable
// files skip the pre-delete backup.
func NewIndexAdmin(index driven.VectorIndex, snapshot driven.Snapshotter) *IndexAdmin {
	return &IndexAdmin{
		index:    index,
		snapshot: snapshot,
	}
}

// ListEntries returns per-date record counts and word counts, ascending.
func (a *IndexAdmin) ListEntries(ctx context.Context) ([]domain.EntrySummary, error) {
	metas, err := a.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", domain.ErrIndexUnavailable, err)
	}

	byDate := make(map[string]*domain.EntrySummary)
	for _, meta := range metas {
		s, ok := byDate[meta.EntryDate]
		if !ok {
			s = &domain.EntrySummary{Date: meta.EntryDate}
			byDate[meta.EntryDate] = s
		}
		s.Chunks++
		s.WordCount += meta.WordCount
	}

	summaries := make([]domain.EntrySummary, 0, len(byDate))
	for _, s := range byDate {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date < summaries[j].Date
	})

	return summaries, nil
}

// Stats returns aggregate statistics over the index.
func (a *IndexAdmin) Stats(ctx context.Context) (*domain.IndexStats, error) {
	metas, err := a.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", domain.ErrIndexUnavailable, err)
	}

	stats := &domain.IndexStats{Chunks: len(metas)}
	seen := make(map[string]bool)
	for _, meta := range metas {
		stats.Words += meta.WordCount
		if !seen[meta.EntryDate] {
			seen[meta.EntryDate] = true
			stats.Entries++
		}
		if stats.FirstDate == "" || meta.EntryDate < stats.FirstDate {
			stats.FirstDate = meta.EntryDate
		}
		if meta.EntryDate > stats.LastDate {
			stats.LastDate = meta.EntryDate
		}
	}

	return stats, nil
}

// DeleteEntry removes all records for the date. Every chunk index for the
// date goes, never a subset. A date with no records returns 0, not an
// error.
func (a *IndexAdmin) DeleteEntry(ctx context.Context, date string) (int, error) {
	if err := domain.ValidateIdentity(date, 0); err != nil {
		return 0, err
	}

	a.backup("pre-delete")

	removed, err := a.index.DeleteWhere(ctx, driven.MetaFilter{Date: date})
	if err != nil {
		return 0, fmt.Errorf("%w: delete %s: %w", domain.ErrIndexUnavailable, date, err)
	}

	logger.Info("Deleted %d records for %s", removed, date)
	return removed, nil
}

// Clear removes every record. It refuses without the exact confirmation
// token so automation cannot wipe the index by accident.
func (a *IndexAdmin) Clear(ctx context.Context, confirm string) (int, error) {
	if confirm != driving.ClearConfirmation {
		return 0, fmt.Errorf("%w: pass %q to clear the index", domain.ErrConfirmationRequired, driving.ClearConfirmation)
	}

	a.backup("pre-clear")

	removed, err := a.index.DeleteWhere(ctx, driven.MetaFilter{})
	if err != nil {
		return 0, fmt.Errorf("%w: clear: %w", domain.ErrIndexUnavailable, err)
	}

	logger.Info("Cleared %d records", removed)
	return removed, nil
}

// backup takes a best-effort snapshot before a destructive operation.
func (a *IndexAdmin) backup(reason string) {
	if a.snapshot == nil {
		return
	}
	path, err := a.snapshot.Backup(reason)
	if err != nil {
		logger.Warn("Backup (%s) failed: %v", reason, err)
		return
	}
	logger.Info("Backup created: %s", path)
}
