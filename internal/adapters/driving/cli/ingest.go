package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driving"
	"github.com/quillstone-labs/daybook-cli/internal/logger"
)

var (
	ingestForce    bool
	ingestMaxWords int
	ingestWatch    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index journal entries from the OCR output directory",
	Long: `Reads OCR text files from the journal directory, splits each entry
into word-bounded chunks, embeds them and writes them to the index.

Entries whose date is already indexed are skipped. Use --force to delete
and re-index existing dates, and --watch to keep running and re-ingest
whenever new OCR output appears.`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestForce, "force", "f", false, "re-index entries that are already indexed")
	ingestCmd.Flags().IntVar(&ingestMaxWords, "max-words", 0, "maximum words per chunk (default 500)")
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "keep watching the journal directory for new entries")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := driving.IngestOptions{
		Force:    ingestForce,
		MaxWords: ingestMaxWords,
	}

	result, err := ingestService.Ingest(ctx, opts)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	printIngestResult(cmd, result)

	if !ingestWatch {
		return nil
	}

	watchable, ok := entrySource.(driven.WatchableEntrySource)
	if !ok {
		return errors.New("the configured entry source does not support watching")
	}

	cmd.Println("Watching for new entries. Press Ctrl-C to stop.")
	err = watchable.Watch(ctx, func() {
		logger.Info("journal directory changed, re-ingesting")
		result, err := ingestService.Ingest(ctx, opts)
		if err != nil {
			logger.Warn("ingest after change failed: %v", err)
			return
		}
		printIngestResult(cmd, result)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printIngestResult(cmd *cobra.Command, result *domain.IngestResult) {
	cmd.Printf("Ingest complete (run %s)\n", result.RunID)
	cmd.Printf("  Inserted: %d\n", result.Inserted)
	cmd.Printf("  Skipped:  %d\n", result.Skipped)
	if result.Deleted > 0 {
		cmd.Printf("  Deleted:  %d\n", result.Deleted)
	}
	if result.EmptySkipped > 0 {
		cmd.Printf("  Empty:    %d\n", result.EmptySkipped)
	}
	if result.Failed > 0 {
		cmd.Printf("  Failed:   %d\n", result.Failed)
	}
	if result.ChunksFailed > 0 {
		cmd.Printf("  Chunks written: %d (%d failed)\n", result.ChunksWritten, result.ChunksFailed)
	}
}
