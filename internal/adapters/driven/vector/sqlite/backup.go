package sqlite

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/quillstone-labs/daybook-cli/internal/core/ports/driven"
)

// maxBackups is how many backups are retained; older ones are pruned.
const maxBackups = 5

// backupTimestamp is the layout used in backup file names.
const backupTimestamp = "20060102_150405"

// Backup copies the index database to a timestamped file next to the data
// directory and prunes old backups.
func (i *Index) Backup(reason string) (string, error) {
	backupDir := filepath.Join(filepath.Dir(filepath.Dir(i.path)), "backups")
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	// Flush the WAL so the copied file is self-contained.
	if _, err := i.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", fmt.Errorf("checkpointing before backup: %w", err)
	}

	name := fmt.Sprintf("backup_%s_%s.db", time.Now().Format(backupTimestamp), reason)
	dst := filepath.Join(backupDir, name)
	if err := copyFile(i.path, dst); err != nil {
		return "", fmt.Errorf("copying database: %w", err)
	}

	if err := i.pruneBackups(); err != nil {
		return "", fmt.Errorf("pruning backups: %w", err)
	}

	return dst, nil
}

// Restore replaces the index database from a backup file.
func (i *Index) Restore(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup not found: %w", err)
	}

	// Checkpoint, then copy over the live file. Callers reopen the index
	// afterwards; the CLI restore command exits right away.
	if _, err := i.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("checkpointing before restore: %w", err)
	}
	if err := copyFile(path, i.path); err != nil {
		return fmt.Errorf("copying backup: %w", err)
	}

	return nil
}

// ListBackups returns available backups, newest first.
func (i *Index) ListBackups() ([]driven.BackupInfo, error) {
	backupDir := filepath.Join(filepath.Dir(filepath.Dir(i.path)), "backups")

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var backups []driven.BackupInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "backup_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, driven.BackupInfo{
			Path:      filepath.Join(backupDir, entry.Name()),
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			Created:   info.ModTime(),
		})
	}

	sort.Slice(backups, func(a, b int) bool {
		return backups[a].Created.After(backups[b].Created)
	})
	return backups, nil
}

// pruneBackups removes all but the most recent maxBackups backups.
func (i *Index) pruneBackups() error {
	backups, err := i.ListBackups()
	if err != nil {
		return err
	}

	for idx := maxBackups; idx < len(backups); idx++ {
		if err := os.Remove(backups[idx].Path); err != nil {
			return fmt.Errorf("removing old backup %s: %w", backups[idx].Name, err)
		}
	}
	return nil
}

// copyFile copies src to dst, replacing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
