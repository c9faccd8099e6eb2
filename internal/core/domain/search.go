package domain

// DateRange is an inclusive [Start, End] entry-date constraint.
type DateRange struct {
	// Start is the earliest date (YYYY-MM-DD), inclusive.
	Start string

	// End is the latest date (YYYY-MM-DD), inclusive.
	End string
}

// Contains reports whether date falls inside the range. ISO dates compare
// correctly as strings.
func (r DateRange) Contains(date string) bool {
	return date >= r.Start && date <= r.End
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// K is the maximum number of results (default 5).
	K int

	// DateRange optionally constrains results to an inclusive date window.
	DateRange *DateRange
}

// SearchResult is a single retrieved chunk. It is transient and never
// persisted.
type SearchResult struct {
	// Text is the chunk content.
	Text string

	// EntryDate is the date of the source entry.
	EntryDate string

	// ChunkIndex is the chunk's position within the entry.
	ChunkIndex int

	// Score is the similarity score reported by the vector index.
	// Higher is more relevant; the scale is opaque to the index
	// implementation and must not be compared across implementations.
	Score float64
}

// Citation references the chunk that justifies part of a synthesized answer.
type Citation struct {
	// EntryDate identifies the cited entry.
	EntryDate string

	// ChunkIndex identifies the cited chunk within the entry.
	ChunkIndex int

	// Excerpt is the cited chunk text.
	Excerpt string
}

// Answer is a synthesized response to a question over the journal.
type Answer struct {
	// Text is the answer body.
	Text string

	// Citations lists every chunk included in the synthesis context.
	Citations []Citation

	// Synthesized is false when the generative capability was unavailable
	// and the answer degraded to raw search results.
	Synthesized bool
}
