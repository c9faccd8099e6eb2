package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

var (
	searchLimit int
	searchFrom  string
	searchTo    string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed journal entries",
	Long: `Performs semantic search across all indexed journal chunks.
Results can be restricted to an inclusive date range with --from and --to.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "earliest entry date to include (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "latest entry date to include (YYYY-MM-DD)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if queryService == nil {
		return errors.New("query service not configured")
	}

	dateRange, err := parseDateRange(searchFrom, searchTo)
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		K:         searchLimit,
		DateRange: dateRange,
	}

	results, err := queryService.Search(context.Background(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

// parseDateRange builds an inclusive date range from the flag values.
// Either bound may be empty.
func parseDateRange(from, to string) (*domain.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	if from != "" && !domain.ValidDate(from) {
		return nil, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", from)
	}
	if to != "" && !domain.ValidDate(to) {
		return nil, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD", to)
	}
	return &domain.DateRange{Start: from, End: to}, nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (chunk %d, %.2f)\n",
			i+1, results[i].EntryDate, results[i].ChunkIndex, results[i].Score)
		cmd.Printf("      %s\n", excerpt(results[i].Text, 200))
		cmd.Println()
	}

	return nil
}

// excerpt truncates text to at most n runes for display.
func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
