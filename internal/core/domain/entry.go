// Package domain contains the core types of the journal retrieval engine.
package domain

import (
	"strings"
	"time"
)

// DateFormat is the ISO calendar date layout used for entry dates.
const DateFormat = "2006-01-02"

// Entry represents one dated journal document, as produced by the OCR
// pipeline or manual transcription. Entries are read-only to this core;
// ingestion re-reads them from the source each run.
type Entry struct {
	// Date is the calendar date of the entry (YYYY-MM-DD), unique per entry.
	Date string

	// Text is the raw entry text.
	Text string

	// SourcePath references the originating text file.
	SourcePath string

	// WordCount is the number of whitespace-separated words in Text.
	WordCount int

	// CharCount is the number of characters in Text.
	CharCount int
}

// NewEntry builds an Entry from a date and raw text, deriving the counts.
func NewEntry(date, text, sourcePath string) Entry {
	return Entry{
		Date:       date,
		Text:       text,
		SourcePath: sourcePath,
		WordCount:  len(strings.Fields(text)),
		CharCount:  len(text),
	}
}

// ValidDate reports whether date is a well-formed ISO calendar date.
func ValidDate(date string) bool {
	_, err := time.Parse(DateFormat, date)
	return err == nil
}
