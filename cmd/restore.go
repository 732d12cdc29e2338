package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/embli/daytrack/internal/storage"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore the active user's entries from a backup",
	Long: `Restore the active user's entry collection from a backup.

Backups are taken before every destructive write (edit, delete). By
default, restores from the most recent backup (.bak.1). Optionally
specify a backup number to restore from (1-3). The current collection
is backed up before it is replaced.

Examples:
  daytrack restore       Restore from most recent backup
  daytrack restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

// restoreFromBackup handles the restore command logic
func restoreFromBackup(args []string) {
	svcs := openServices()
	if svcs == nil {
		return
	}
	user := activeUser(svcs)
	if user == "" {
		return
	}

	collectionPath := svcs.User.CollectionPath(user)

	backups := storage.ListBackups(collectionPath)
	if len(backups) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No backups available for %s\n", user)
		deps.Exit(1)
		return
	}

	// Display available backups
	_, _ = fmt.Fprintf(deps.Stdout, "Available backups for %s:\n", user)
	for _, backup := range backups {
		if backup.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", backup.Number, backup.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", backup.Number, backup.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	backupExists := false
	for _, backup := range backups {
		if backup.Number == backupNum {
			backupExists = true
			break
		}
	}

	if !backupExists {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", backupNum)
		deps.Exit(1)
		return
	}

	if err := storage.RestoreBackup(collectionPath, backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored %s from backup %d\n", user, backupNum)
}
