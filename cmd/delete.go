package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/embli/daytrack/internal/service"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an activity entry",
	Long: `Delete an activity entry addressed by its id or a unique id prefix.
The id is shown in brackets in the feed output.
A confirmation prompt will be shown unless --yes is specified.

Example:
  daytrack delete 3f2a91c4
  daytrack delete 3f2a --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deleteEntry(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
}

// deleteEntry handles the deletion of an activity entry
func deleteEntry(cmd *cobra.Command, idArg string) {
	svcs := openServices()
	if svcs == nil {
		return
	}
	user := activeUser(svcs)
	if user == "" {
		return
	}

	entries := svcs.Entries(user)

	target, warning, err := entries.Resolve(idArg)
	printWarning(warning)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: No single entry matches id %q\n", idArg)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List entries with 'daytrack' to see their ids")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to look up entry: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	// Show the entry being deleted
	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s  %s\n", target.Date, strings.TrimLeft(formatEntryLine(*target), " "))

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !promptConfirmation("Delete this entry? [y/N]: ") {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	removed, warning, err := entries.Delete(target.ID)
	printWarning(warning)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to delete entry: %v\n", err)
		deps.Exit(1)
		return
	}
	if !removed {
		// Resolved moments ago but gone now; treat as already deleted.
		_, _ = fmt.Fprintln(deps.Stdout, "Entry was already deleted")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted entry %s\n", shortID(target.ID))
}

// promptConfirmation asks the user to confirm an action.
// Returns true if the user answers 'y' or 'Y', false otherwise.
func promptConfirmation(prompt string) bool {
	_, _ = fmt.Fprint(deps.Stdout, prompt)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
