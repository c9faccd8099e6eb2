package domain

// EntrySummary is the per-date listing produced by the index admin.
type EntrySummary struct {
	// Date is the entry date.
	Date string

	// Chunks is the number of index records for this date.
	Chunks int

	// WordCount is the total word count across the date's chunks.
	WordCount int
}

// IndexStats aggregates the state of the vector index.
type IndexStats struct {
	// Entries is the number of distinct entry dates.
	Entries int

	// Chunks is the total number of index records.
	Chunks int

	// Words is the total word count across all records.
	Words int

	// FirstDate is the earliest entry date, empty when the index is empty.
	FirstDate string

	// LastDate is the latest entry date, empty when the index is empty.
	LastDate string
}

// IngestResult summarises one ingestion run. It is always returned, even
// when parts of the run failed; per-entry and per-chunk failures never
// surface as errors from the run itself.
type IngestResult struct {
	// RunID uniquely identifies this ingestion run in logs and summaries.
	RunID string

	// Inserted counts entries whose chunks were fully written.
	Inserted int

	// Skipped counts entries already present and left untouched.
	Skipped int

	// Deleted counts index records removed by forced re-ingestion.
	Deleted int

	// Failed counts entries rolled back after an index failure.
	Failed int

	// EmptySkipped counts entries with no text, skipped with a warning.
	EmptySkipped int

	// ChunksWritten counts individual records written to the index.
	ChunksWritten int

	// ChunksFailed counts chunks skipped after an embedding failure.
	ChunksFailed int
}
