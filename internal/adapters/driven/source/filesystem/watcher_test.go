package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_NotifiesOnNewTextFile(t *testing.T) {
	old := debounce
	debounce = 50 * time.Millisecond
	defer func() { debounce = old }()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "text"), 0700))
	source := NewSource(root)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- source.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(root, "text", "IMG_2024-07-15.txt"), "new entry")

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("expected a change notification before timeout")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatch_IgnoresUnrelatedFiles(t *testing.T) {
	old := debounce
	debounce = 50 * time.Millisecond
	defer func() { debounce = old }()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "text"), 0700))
	source := NewSource(root)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	go func() {
		_ = source.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(root, "text", "thumbnail.png"), "not ocr output")

	select {
	case <-changed:
		t.Fatal("png writes must not trigger re-ingestion")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_MissingDirectoriesReturns(t *testing.T) {
	source := NewSource(filepath.Join(t.TempDir(), "gone"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := source.Watch(ctx, func() {})
	assert.ErrorIs(t, err, context.Canceled)
}
