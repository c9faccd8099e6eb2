package services

import (
	"strings"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

// DefaultMaxWords is the default chunk word budget.
const DefaultMaxWords = 500

// SplitEntry splits an entry's text into bounded, non-overlapping,
// sequential chunks. It is a pure function of (text, maxWords): the same
// input always yields the same boundaries and indices, which is what makes
// (entry date, chunk index) a recomputable identity.
//
// Splitting happens at whitespace boundaries only; a word is never cut.
// The last chunk may be shorter than maxWords. Empty text yields no chunks.
func SplitEntry(entry domain.Entry, maxWords int) []domain.Chunk {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	words := strings.Fields(entry.Text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, 0, (len(words)+maxWords-1)/maxWords)
	for start := 0; start < len(words); start += maxWords {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, domain.Chunk{
			EntryDate: entry.Date,
			Index:     len(chunks),
			Text:      strings.Join(words[start:end], " "),
			WordCount: end - start,
		})
	}

	return chunks
}
