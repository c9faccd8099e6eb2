package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driving"
)

var clearConfirmFlag string

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every record in the index",
	Long: fmt.Sprintf(`Deletes all indexed journal chunks. This cannot be undone beyond the
automatic pre-clear backup.

You must confirm by typing %q at the prompt, or pass
--confirm %q in scripts.`, driving.ClearConfirmation, driving.ClearConfirmation),
	RunE: runClear,
}

func init() {
	clearCmd.Flags().StringVar(&clearConfirmFlag, "confirm", "", "confirmation token for non-interactive use")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	confirmation := clearConfirmFlag
	if confirmation == "" {
		token, err := promptClearToken(cmd)
		if err != nil {
			return err
		}
		confirmation = token
	}

	removed, err := adminService.Clear(context.Background(), confirmation)
	if err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	cmd.Printf("Cleared %d chunks from the index.\n", removed)
	return nil
}

// promptClearToken asks the user to type the confirmation token. The typed
// value is passed through unchanged so the service enforces the exact match.
func promptClearToken(cmd *cobra.Command) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("stdin is not a terminal, pass --confirm %q", driving.ClearConfirmation)
	}

	cmd.Printf("Type %q to delete the entire index: ", driving.ClearConfirmation)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading confirmation: %w", err)
	}
	return strings.TrimRight(input, "\r\n"), nil
}
