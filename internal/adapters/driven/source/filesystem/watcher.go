package filesystem

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quillstone-labs/daybook-cli/internal/logger"
)

// debounce coalesces bursts of filesystem events into one notification,
// and gives the OCR pipeline time to finish writing a file.
var debounce = 2 * time.Second

// Watch blocks until ctx is cancelled, invoking onChange whenever text
// files are created or rewritten under the source directory.
func (s *Source) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dirs := []string{s.root, filepath.Join(s.root, "text"), filepath.Join(s.root, "metadata")}
	watching := 0
	for _, dir := range dirs {
		if err := watcher.Add(dir); err == nil {
			watching++
		}
	}
	if watching == 0 {
		return ctx.Err()
	}

	logger.Info("Watching %s for new entries", s.root)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, ".txt") && !strings.HasSuffix(name, ".json") {
				continue
			}
			logger.Debug("Source change: %s %s", event.Op, name)
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerCh = timer.C
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)

		case <-timerCh:
			timer = nil
			timerCh = nil
			onChange()
		}
	}
}
