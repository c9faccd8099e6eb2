package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List indexed entry dates",
	RunE:  runDates,
}

func init() {
	rootCmd.AddCommand(datesCmd)
}

func runDates(cmd *cobra.Command, _ []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	dates, err := queryService.ListDates(context.Background())
	if err != nil {
		return fmt.Errorf("listing dates failed: %w", err)
	}

	if len(dates) == 0 {
		cmd.Println("No entries indexed.")
		return nil
	}

	for _, d := range dates {
		cmd.Println(d)
	}
	return nil
}
