package storage

import (
	"fmt"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files kept per blob
	MaxBackupCount = 3
)

// BackupPath returns the path of the n-th backup for the given blob.
// Lower numbers are more recent: .bak.1 is the newest backup.
func BackupPath(path string, n int) string {
	return fmt.Sprintf("%s%s.%d", path, BackupSuffix, n)
}

// rotateBackups shifts existing backups to make room for a new one:
// .bak.2 becomes .bak.3, .bak.1 becomes .bak.2, and the oldest is dropped.
func rotateBackups(path string) error {
	oldest := BackupPath(path, MaxBackupCount)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(path, i), BackupPath(path, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// CreateBackup copies the blob at path to its .bak.1 slot, rotating older
// backups. No backup is taken (and no error returned) when the blob does
// not exist yet.
func CreateBackup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(path); err != nil {
		return err
	}

	return os.WriteFile(BackupPath(path, 1), data, 0644)
}

// BackupInfo describes one available backup file
type BackupInfo struct {
	Number int    // Rotation slot (1 is most recent)
	Path   string // Full path of the backup file
}

// ListBackups returns the available backups for the given blob, most
// recent first. Returns an empty slice when none exist.
func ListBackups(path string) []BackupInfo {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		p := BackupPath(path, i)
		if _, err := os.Stat(p); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: p})
		}
	}
	return backups
}

// RestoreBackup replaces the blob at path with its n-th backup.
// The current state is backed up first, so a restore can itself be rolled
// back.
func RestoreBackup(path string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	backupPath := BackupPath(path, n)
	data, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	if err := CreateBackup(path); err != nil {
		return err
	}

	return atomicWrite(path, data)
}
