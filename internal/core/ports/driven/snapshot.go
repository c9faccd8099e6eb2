package driven

import "time"

// BackupInfo describes one stored index backup.
type BackupInfo struct {
	// Path is the backup location on disk.
	Path string

	// Name is the backup file name.
	Name string

	// SizeBytes is the backup size.
	SizeBytes int64

	// Created is when the backup was taken.
	Created time.Time
}

// Snapshotter takes and restores file-level backups of the vector index.
// This is an optional capability - indexes without durable files (such as
// the in-memory index) do not provide it.
type Snapshotter interface {
	// Backup copies the index to a timestamped backup labelled with reason
	// (e.g. "pre-delete", "pre-clear") and returns its path. Old backups
	// are pruned to the most recent few.
	Backup(reason string) (string, error)

	// Restore replaces the index contents from a backup path.
	Restore(path string) error

	// ListBackups returns available backups, newest first.
	ListBackups() ([]BackupInfo, error)
}
