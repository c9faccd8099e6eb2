package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Chunk is a contiguous, non-overlapping slice of one entry's text.
// The pair (EntryDate, Index) is its stable identity: re-splitting the same
// entry text always reproduces the same boundaries and indices, so identity
// can be recomputed without persisted state.
type Chunk struct {
	// EntryDate is the date of the entry this chunk belongs to.
	EntryDate string

	// Index is the 0-based sequential position within the entry.
	Index int

	// Text is the chunk content.
	Text string

	// WordCount is the number of words in Text.
	WordCount int
}

// ID returns the persistent record identity for this chunk.
func (c Chunk) ID() string {
	return RecordID(c.EntryDate, c.Index)
}

// RecordID derives the stable index record identity for a chunk.
// The format is "<date>_chunk_<index>" and must not change across releases:
// deletes and upserts target records by this string.
func RecordID(entryDate string, chunkIndex int) string {
	return fmt.Sprintf("%s_chunk_%d", entryDate, chunkIndex)
}

// ParseRecordID splits a record identity back into its date and chunk index.
func ParseRecordID(id string) (entryDate string, chunkIndex int, err error) {
	date, idx, ok := strings.Cut(id, "_chunk_")
	if !ok {
		return "", 0, fmt.Errorf("%w: malformed record id %q", ErrInvalidIdentity, id)
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 || !ValidDate(date) {
		return "", 0, fmt.Errorf("%w: malformed record id %q", ErrInvalidIdentity, id)
	}
	return date, n, nil
}

// ValidateIdentity rejects malformed dates and negative chunk indices before
// they reach the vector index.
func ValidateIdentity(entryDate string, chunkIndex int) error {
	if !ValidDate(entryDate) {
		return fmt.Errorf("%w: bad date %q", ErrInvalidIdentity, entryDate)
	}
	if chunkIndex < 0 {
		return fmt.Errorf("%w: negative chunk index %d", ErrInvalidIdentity, chunkIndex)
	}
	return nil
}

// RecordMeta is the metadata persisted alongside a chunk's embedding.
type RecordMeta struct {
	// EntryDate is the ISO date of the source entry.
	EntryDate string

	// ChunkIndex is the chunk's position within the entry.
	ChunkIndex int

	// WordCount is the chunk's word count.
	WordCount int

	// SourcePath references the originating text file.
	SourcePath string
}

// IndexRecord is the persisted unit: one chunk, its embedding and metadata.
// Records are owned by the vector index; the core never caches vectors.
// An update is a delete-then-insert at the same identity, never an in-place
// mutation.
type IndexRecord struct {
	// ID is the deterministic record identity (see RecordID).
	ID string

	// Text is the chunk content.
	Text string

	// Embedding is the chunk's vector representation.
	Embedding []float32

	// Meta is the record metadata used for filtering and admin listings.
	Meta RecordMeta
}
