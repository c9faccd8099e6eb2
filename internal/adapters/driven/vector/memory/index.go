// Package memory provides an in-memory vector index for tests and
// ephemeral runs. Nothing survives the process.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is a map-backed vector index with brute-force cosine search.
type Index struct {
	mu      sync.RWMutex
	records map[string]domain.IndexRecord
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{
		records: make(map[string]domain.IndexRecord),
	}
}

// Upsert inserts or replaces the record at rec.ID.
func (i *Index) Upsert(_ context.Context, rec domain.IndexRecord) error {
	if err := domain.ValidateIdentity(rec.Meta.EntryDate, rec.Meta.ChunkIndex); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.records[rec.ID] = rec
	return nil
}

// Delete removes the record with the given identity.
func (i *Index) Delete(_ context.Context, id string) error {
	if _, _, err := domain.ParseRecordID(id); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.records, id)
	return nil
}

// DeleteWhere removes every record matching the filter.
func (i *Index) DeleteWhere(_ context.Context, filter driven.MetaFilter) (int, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	removed := 0
	for id, rec := range i.records {
		if filter.Matches(rec.Meta.EntryDate) {
			delete(i.records, id)
			removed++
		}
	}
	return removed, nil
}

// Query returns the k nearest neighbours by cosine similarity, restricted
// to records matching the filter.
func (i *Index) Query(_ context.Context, vector []float32, k int, filter driven.MetaFilter) ([]driven.VectorHit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(i.records))
	for _, rec := range i.records {
		if !filter.Matches(rec.Meta.EntryDate) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ID:    rec.ID,
			Text:  rec.Text,
			Meta:  rec.Meta,
			Score: Cosine(vector, rec.Embedding),
		})
	}

	sort.Slice(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// List returns the metadata of every record.
func (i *Index) List(_ context.Context) ([]domain.RecordMeta, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	metas := make([]domain.RecordMeta, 0, len(i.records))
	for _, rec := range i.records {
		metas = append(metas, rec.Meta)
	}
	return metas, nil
}

// Count returns the number of records.
func (i *Index) Count(_ context.Context) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.records), nil
}

// Close is a no-op for the in-memory index.
func (i *Index) Close() error {
	return nil
}

// Cosine computes the cosine similarity between two vectors.
// Returns 0 if either vector has zero magnitude or lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
