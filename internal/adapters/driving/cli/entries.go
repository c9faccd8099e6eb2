package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

var entriesJSON bool

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List indexed journal entries",
	Long:  `Lists every indexed entry date with its chunk and word counts.`,
	RunE:  runEntries,
}

func init() {
	entriesCmd.Flags().BoolVar(&entriesJSON, "json", false, "output entries as JSON")
	rootCmd.AddCommand(entriesCmd)
}

func runEntries(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	entries, err := adminService.ListEntries(context.Background())
	if err != nil {
		return fmt.Errorf("listing entries failed: %w", err)
	}

	if entriesJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	return outputEntriesTable(cmd, entries)
}

func outputEntriesTable(cmd *cobra.Command, entries []domain.EntrySummary) error {
	if len(entries) == 0 {
		cmd.Println("No entries indexed.")
		return nil
	}

	cmd.Printf("%-12s %8s %8s\n", "Date", "Chunks", "Words")
	for _, e := range entries {
		cmd.Printf("%-12s %8d %8d\n", e.Date, e.Chunks, e.WordCount)
	}
	cmd.Printf("\n%d entries\n", len(entries))
	return nil
}
