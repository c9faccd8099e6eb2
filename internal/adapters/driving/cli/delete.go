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

	"github.com/quillstone-labs/daybook-cli/internal/core/domain"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [date]",
	Short: "Delete an indexed entry by date",
	Long: `Removes every indexed chunk for the given entry date (YYYY-MM-DD).
A backup of the index is taken first when backups are available.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	date := args[0]

	if adminService == nil {
		return errors.New("admin service not configured")
	}
	if !domain.ValidDate(date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	if !deleteYes {
		ok, err := confirm(cmd, fmt.Sprintf("Delete entry %s? [y/N]: ", date))
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	removed, err := adminService.DeleteEntry(context.Background(), date)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	if removed == 0 {
		cmd.Printf("No chunks indexed for %s.\n", date)
	} else {
		cmd.Printf("Deleted %d chunks for %s.\n", removed, date)
	}
	return nil
}

// confirm asks a yes/no question on stdin. Non-interactive stdin counts
// as a refusal so scripted runs must pass --yes.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("stdin is not a terminal, pass --yes to confirm")
	}

	cmd.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(input))
	return answer == "y" || answer == "yes", nil
}
