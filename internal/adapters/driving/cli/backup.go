package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage index backups",
	Long: `Creates, lists and restores backups of the index database.
The five most recent backups are kept.`,
	RunE: runBackupCreate,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	RunE:  runBackupList,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [path]",
	Short: "Restore the index from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRestore,
}

func init() {
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	if snapshotter == nil {
		return errors.New("backups are not available for this index")
	}

	path, err := snapshotter.Backup("manual")
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	cmd.Printf("Backup written to %s\n", path)
	return nil
}

func runBackupList(cmd *cobra.Command, _ []string) error {
	if snapshotter == nil {
		return errors.New("backups are not available for this index")
	}

	backups, err := snapshotter.ListBackups()
	if err != nil {
		return fmt.Errorf("listing backups failed: %w", err)
	}

	if len(backups) == 0 {
		cmd.Println("No backups found.")
		return nil
	}

	for _, b := range backups {
		cmd.Printf("%s  %8d bytes  %s\n",
			b.Created.Format("2006-01-02 15:04:05"), b.SizeBytes, b.Name)
	}
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	if snapshotter == nil {
		return errors.New("backups are not available for this index")
	}

	if err := snapshotter.Restore(args[0]); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	cmd.Printf("Index restored from %s\n", args[0])
	return nil
}
