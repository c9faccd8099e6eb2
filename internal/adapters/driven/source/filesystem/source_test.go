package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestListEntries_ReadsTextWithMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "text", "scan_001.txt"), "went swimming in the lake")
	writeFile(t, filepath.Join(root, "metadata", "scan_001.json"),
		`{"entry_date": "2024-07-14", "word_count": 5}`)

	source := NewSource(root)
	entries, err := source.ListEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-07-14", entries[0].Date)
	assert.Equal(t, "went swimming in the lake", entries[0].Text)
	assert.Equal(t, filepath.Join(root, "text", "scan_001.txt"), entries[0].SourcePath)
	assert.Equal(t, 5, entries[0].WordCount)
}

func TestListEntries_FallsBackToFilenameDate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "text", "IMG_2024-07-15.txt"), "no metadata for this one")

	source := NewSource(root)
	entries, err := source.ListEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-07-15", entries[0].Date)
}

func TestListEntries_MetadataWinsOverFilename(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "text", "IMG_2024-01-01.txt"), "text")
	writeFile(t, filepath.Join(root, "metadata", "IMG_2024-01-01.json"),
		`{"entry_date": "2024-02-02"}`)

	source := NewSource(root)
	entries, err := source.ListEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-02-02", entries[0].Date)
}

func TestListEntries_SkipsUndatedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "text", "undated_scan.txt"), "no date anywhere")
	writeFile(t, filepath.Join(root, "text", "IMG_2024-07-15.txt"), "dated")

	source := NewSource(root)
	entries, err := source.ListEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-07-15", entries[0].Date)
}

func TestListEntries_MalformedMetadataFallsBack(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "text", "IMG_2024-07-15.txt"), "text")
	writeFile(t, filepath.Join(root, "metadata", "IMG_2024-07-15.json"), `{not json`)

	source := NewSource(root)
	entries, err := source.ListEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-07-15", entries[0].Date)
}

func TestListEntries_FlatDirectoryLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "2024-03-01.txt"), "flat layout entry")

	source := NewSource(root)
	entries, err := source.ListEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-03-01", entries[0].Date)
}

func TestListEntries_SortedByDate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "text", "c_2024-03-03.txt"), "third")
	writeFile(t, filepath.Join(root, "text", "a_2024-03-01.txt"), "first")
	writeFile(t, filepath.Join(root, "text", "b_2024-03-02.txt"), "second")

	source := NewSource(root)
	entries, err := source.ListEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-03-01", entries[0].Date)
	assert.Equal(t, "2024-03-02", entries[1].Date)
	assert.Equal(t, "2024-03-03", entries[2].Date)
}

func TestListEntries_IgnoresNonTextFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "text", "IMG_2024-07-15.txt"), "entry")
	writeFile(t, filepath.Join(root, "text", "IMG_2024-07-15.png"), "binary junk")

	source := NewSource(root)
	entries, err := source.ListEntries(context.Background())

	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestListEntries_MissingRootFails(t *testing.T) {
	source := NewSource(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := source.ListEntries(context.Background())

	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
