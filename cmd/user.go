package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embli/daytrack/internal/service"
	"github.com/embli/daytrack/internal/storage"
)

// userCmd represents the user parent command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user profiles",
	Long: `Manage the user profiles known to daytrack.

Each profile owns its own entry collection. The active profile is picked
from the --user flag, the default_user config setting, or the only
existing profile when there is exactly one.

Examples:
  daytrack user add alice      Create the 'alice' profile
  daytrack user list           List all profiles
  daytrack user remove alice   Delete 'alice' and all her entries`,
}

// userAddCmd represents the user add command
var userAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new user profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		addUser(args[0])
	},
}

// userListCmd represents the user list command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all user profiles",
	Run: func(cmd *cobra.Command, args []string) {
		listUsers()
	},
}

// userRemoveCmd represents the user remove command
var userRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a user profile and all its entries",
	Long: `Delete a user profile together with its entry collection and backups.
A confirmation prompt is shown unless --yes is specified.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		removeUser(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userRemoveCmd)

	userRemoveCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
}

// addUser creates a new user profile
func addUser(name string) {
	svcs := openServices()
	if svcs == nil {
		return
	}

	if err := svcs.User.Create(name); err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidUserName):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %q is not a usable profile name\n", name)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Names cannot be empty or contain path separators")
		case errors.Is(err, service.ErrUserExists):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Profile %q already exists\n", name)
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create profile: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created profile %q\n", name)
}

// listUsers prints all known user profiles
func listUsers() {
	svcs := openServices()
	if svcs == nil {
		return
	}

	users, warning, err := svcs.User.Users()
	printWarning(warning)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read profiles: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(users) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No profiles yet")
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Create one with 'daytrack user add <name>'")
		return
	}

	defaultUser := svcs.Config.Get().DefaultUser
	for _, u := range users {
		if u == defaultUser {
			_, _ = fmt.Fprintf(deps.Stdout, "%s (default)\n", u)
		} else {
			_, _ = fmt.Fprintln(deps.Stdout, u)
		}
	}
}

// removeUser deletes a profile and its entry collection
func removeUser(cmd *cobra.Command, name string) {
	svcs := openServices()
	if svcs == nil {
		return
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		prompt := fmt.Sprintf("Delete profile %q and all its entries? [y/N]: ", name)
		if !promptConfirmation(prompt) {
			_, _ = fmt.Fprintln(deps.Stdout, "Removal cancelled")
			return
		}
	}

	if err := svcs.User.Delete(name); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Profile %q does not exist\n", name)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List profiles with 'daytrack user list'")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to remove profile: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Removed profile %q and its entries\n", name)
}
