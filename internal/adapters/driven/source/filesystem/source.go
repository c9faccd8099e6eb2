// Package filesystem reads journal entries from the OCR pipeline's output
// directory: text/<name>.txt holds the transcribed entry, and an optional
// metadata/<name>.json records the entry date and word count. When metadata
// is missing the date is derived from the file name.
package filesystem

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
	"github.com/quillstone-labs/daybook-cli/internal/logger"
)

// Ensure Source implements the interfaces.
var _ driven.WatchableEntrySource = (*Source)(nil)

// datePattern matches an ISO date embedded in a file name,
// e.g. "IMG_2026-01-31.txt".
var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// entryMetadata is the OCR pipeline's per-entry metadata file format.
type entryMetadata struct {
	EntryDate string `json:"entry_date"`
	WordCount int    `json:"word_count"`
}

// Source reads entries from an OCR output directory.
type Source struct {
	root string
}

// NewSource creates a filesystem entry source rooted at the OCR output
// directory.
func NewSource(root string) *Source {
	return &Source{root: root}
}

// ListEntries returns every entry under the source directory, ordered by
// date. Text files without a resolvable date are skipped with a warning.
func (s *Source) ListEntries(_ context.Context) ([]domain.Entry, error) {
	textDir := filepath.Join(s.root, "text")
	if _, err := os.Stat(textDir); err != nil {
		// Also accept a flat directory of dated .txt files.
		if _, flatErr := os.Stat(s.root); flatErr != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, flatErr)
		}
		textDir = s.root
	}

	files, err := os.ReadDir(textDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	var entries []domain.Entry
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".txt") {
			continue
		}

		path := filepath.Join(textDir, file.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrSourceUnavailable, file.Name(), err)
		}

		date := s.resolveDate(file.Name())
		if date == "" {
			logger.Warn("Skipping %s: no entry date in metadata or file name", file.Name())
			continue
		}

		entries = append(entries, domain.NewEntry(date, strings.TrimSpace(string(raw)), path))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries, nil
}

// resolveDate finds the entry date for a text file: the metadata JSON wins,
// then an ISO date embedded in the file name.
func (s *Source) resolveDate(textName string) string {
	stem := strings.TrimSuffix(textName, ".txt")

	metaPath := filepath.Join(s.root, "metadata", stem+".json")
	if raw, err := os.ReadFile(metaPath); err == nil {
		var meta entryMetadata
		if err := json.Unmarshal(raw, &meta); err == nil && domain.ValidDate(meta.EntryDate) {
			return meta.EntryDate
		}
		logger.Warn("Ignoring malformed metadata for %s", textName)
	}

	if m := datePattern.FindString(stem); m != "" && domain.ValidDate(m) {
		return m
	}
	return ""
}
