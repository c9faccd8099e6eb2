package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	stats, err := adminService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("reading stats failed: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println("Index statistics")
	cmd.Printf("  Entries: %d\n", stats.Entries)
	cmd.Printf("  Chunks:  %d\n", stats.Chunks)
	cmd.Printf("  Words:   %d\n", stats.Words)
	if stats.FirstDate != "" {
		cmd.Printf("  Range:   %s to %s\n", stats.FirstDate, stats.LastDate)
	}
	return nil
}
