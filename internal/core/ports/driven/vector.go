package driven

import (
	"context"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

// MetaFilter constrains index operations to records matching metadata.
// The zero value matches every record. Date and Range are mutually
// exclusive; when both are set, Date wins.
type MetaFilter struct {
	// Date matches records with exactly this entry date.
	Date string

	// Range matches records whose entry date falls inside the inclusive
	// window.
	Range *domain.DateRange
}

// Matches reports whether a record with the given entry date passes the
// filter.
func (f MetaFilter) Matches(entryDate string) bool {
	if f.Date != "" {
		return entryDate == f.Date
	}
	if f.Range != nil {
		return f.Range.Contains(entryDate)
	}
	return true
}

// VectorHit is a single nearest-neighbour result from the index.
type VectorHit struct {
	// ID is the record identity.
	ID string

	// Text is the stored chunk content.
	Text string

	// Meta is the record metadata.
	Meta domain.RecordMeta

	// Score is the similarity score, higher is more similar. The scale is
	// defined by the index implementation and is opaque to callers.
	Score float64
}

// VectorIndex is the persistent store for chunk embeddings. It is the only
// durable state the engine holds. Inserts and deletes are the only write
// operations, always scoped to a full identity or a metadata filter; the
// caller serialises writers.
type VectorIndex interface {
	// Upsert inserts or replaces the record at rec.ID.
	Upsert(ctx context.Context, rec domain.IndexRecord) error

	// Delete removes the record with the given identity. Deleting a record
	// that does not exist is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteWhere removes every record matching the filter and returns how
	// many were removed.
	DeleteWhere(ctx context.Context, filter MetaFilter) (int, error)

	// Query returns the k nearest neighbours to the vector, restricted to
	// records matching the filter. An empty index yields an empty slice.
	Query(ctx context.Context, vector []float32, k int, filter MetaFilter) ([]VectorHit, error)

	// List returns the metadata of every record, in unspecified order.
	List(ctx context.Context) ([]domain.RecordMeta, error)

	// Count returns the number of records in the index.
	Count(ctx context.Context) (int, error)

	// Close flushes and releases the index.
	Close() error
}
