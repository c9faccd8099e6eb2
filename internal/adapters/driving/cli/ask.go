package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askK int

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question answered from your journal",
	Long: `Retrieves the journal chunks most relevant to the question and asks
the configured LLM to answer using only those chunks. When no LLM is
configured the matching chunks are shown instead of a generated answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askK, "context", "k", 5, "number of chunks to retrieve as context")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if answerService == nil {
		return errors.New("answer service not configured")
	}

	answer, err := answerService.Answer(context.Background(), question, askK)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if !answer.Synthesized {
		cmd.Println("No LLM available, showing the most relevant entries instead.")
		cmd.Println()
	}
	cmd.Println(answer.Text)

	if len(answer.Citations) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, c := range answer.Citations {
			cmd.Printf("  - %s (chunk %d)\n", c.EntryDate, c.ChunkIndex)
		}
	}

	return nil
}
