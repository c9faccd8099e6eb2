package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driving"
	"github.com/quillstone-labs/daybook-cli/internal/logger"
)

// Ensure IngestionManager implements the interface.
var _ driving.Ingestor = (*IngestionManager)(nil)

// IngestionManager converges the vector index to match the entry corpus.
// It recomputes each entry's expected chunk set deterministically, diffs
// dates against the index and drives inserts and deletes through the
// VectorIndex capability.
type IngestionManager struct {
	source    driven.EntrySource
	embedding driven.EmbeddingService
	index     driven.VectorIndex
}

// NewIngestionManager creates a new ingestion manager.
func NewIngestionManager(
	source driven.EntrySource,
	embedding driven.EmbeddingService,
	index driven.VectorIndex,
) *IngestionManager {
	return &IngestionManager{
		source:    source,
		embedding: embedding,
		index:     index,
	}
}

// Ingest reads all entries from the source and applies the inserts and
// deletes needed to bring the index in line with the corpus.
//
// Entries whose date is already indexed are skipped unless opts.Force is
// set; forcing deletes the date's records and re-inserts from the current
// text. Each entry is all-or-nothing: an index failure mid-entry rolls the
// entry's records back and ingestion continues with the next entry. Only
// connectivity failures of the source or index abort the whole run.
func (m *IngestionManager) Ingest(ctx context.Context, opts driving.IngestOptions) (*domain.IngestResult, error) {
	if m.embedding == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	entries, err := m.source.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %w", domain.ErrSourceUnavailable, err)
	}

	existing, err := m.indexedDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list indexed dates: %w", domain.ErrIndexUnavailable, err)
	}

	result := &domain.IngestResult{RunID: uuid.New().String()}
	logger.Section("Ingestion")
	logger.Info("Run %s: %d entries, %d dates already indexed", result.RunID, len(entries), len(existing))

	for _, entry := range entries {
		// Ingestion is interruptible between entries; a finished entry
		// stays, an unfinished one was rolled back.
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := domain.ValidateIdentity(entry.Date, 0); err != nil {
			logger.Warn("Skipping entry with bad date %q: %v", entry.Date, err)
			result.Failed++
			continue
		}

		chunks := SplitEntry(entry, opts.MaxWords)
		if len(chunks) == 0 {
			logger.Warn("Skipping %s: entry has no text", entry.Date)
			result.EmptySkipped++
			continue
		}

		if existing[entry.Date] {
			if !opts.Force {
				logger.Debug("Skipping %s: already indexed", entry.Date)
				result.Skipped++
				continue
			}

			deleted, err := m.index.DeleteWhere(ctx, driven.MetaFilter{Date: entry.Date})
			if err != nil {
				return result, fmt.Errorf("%w: delete %s for re-ingest: %w", domain.ErrIndexUnavailable, entry.Date, err)
			}
			logger.Debug("Force: deleted %d records for %s", deleted, entry.Date)
			result.Deleted += deleted
		}

		inserted, failed, err := m.ingestEntry(ctx, entry, chunks)
		result.ChunksWritten += inserted
		result.ChunksFailed += failed
		if err != nil {
			logger.Warn("Entry %s rolled back: %v", entry.Date, err)
			result.Failed++
			continue
		}
		result.Inserted++
	}

	logger.Info("Ingestion complete: %d inserted, %d skipped, %d deleted, %d failed",
		result.Inserted, result.Skipped, result.Deleted, result.Failed)
	return result, nil
}

// ingestEntry embeds and writes one entry's chunks. Embedding failures skip
// the chunk and are reported; an index write failure rolls back everything
// written for the entry so the date is either fully present or absent.
func (m *IngestionManager) ingestEntry(ctx context.Context, entry domain.Entry, chunks []domain.Chunk) (inserted, failed int, err error) {
	for _, chunk := range chunks {
		vector, embErr := m.embedding.Embed(ctx, chunk.Text)
		if embErr != nil {
			if ctx.Err() != nil {
				err = m.rollback(ctx, entry.Date, ctx.Err())
				return inserted, failed, err
			}
			logger.Warn("Embedding failed for %s: %v", chunk.ID(), embErr)
			failed++
			continue
		}

		rec := domain.IndexRecord{
			ID:        chunk.ID(),
			Text:      chunk.Text,
			Embedding: vector,
			Meta: domain.RecordMeta{
				EntryDate:  chunk.EntryDate,
				ChunkIndex: chunk.Index,
				WordCount:  chunk.WordCount,
				SourcePath: entry.SourcePath,
			},
		}

		if upErr := m.index.Upsert(ctx, rec); upErr != nil {
			err = m.rollback(ctx, entry.Date, upErr)
			return 0, failed, err
		}
		inserted++
	}

	return inserted, failed, nil
}

// rollback removes whatever was written for the date so a failed entry
// never leaves partial records behind.
func (m *IngestionManager) rollback(ctx context.Context, date string, cause error) error {
	// Use a fresh context so rollback still runs after cancellation.
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	if _, delErr := m.index.DeleteWhere(ctx, driven.MetaFilter{Date: date}); delErr != nil {
		return fmt.Errorf("insert failed (%v) and rollback failed: %w", cause, delErr)
	}
	return fmt.Errorf("insert failed, entry rolled back: %w", cause)
}

// indexedDates returns the set of entry dates currently in the index.
func (m *IngestionManager) indexedDates(ctx context.Context) (map[string]bool, error) {
	metas, err := m.index.List(ctx)
	if err != nil {
		return nil, err
	}
	dates := make(map[string]bool, len(metas))
	for _, meta := range metas {
		dates[meta.EntryDate] = true
	}
	return dates, nil
}
