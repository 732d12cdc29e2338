package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/feed"
	"github.com/embli/daytrack/internal/service"
	"github.com/embli/daytrack/internal/storage"
)

var userFlag string

var rootCmd = &cobra.Command{
	Use:   "daytrack",
	Short: "A personal day-activity logger",
	Long: `daytrack is a CLI tool for logging small day-to-day activities:
meals, sleep, sports, moods. Each entry lives on a date and a coarse
time-of-day slot, carries a category with a fixed emoji set, and is
stored locally per user.

Usage:
  daytrack                                     Show the activity feed
  daytrack <category> [text...]                Log an entry for today
  daytrack eating lunch with Anna --time noon  Log with an explicit slot
  daytrack sports --emoji 🏊 --date 2025-11-18 Log for another day
  daytrack edit <id> --text 'new text'         Edit an entry by id prefix
  daytrack delete <id>                         Delete an entry (with confirmation)
  daytrack user add <name>                     Create a user profile
  daytrack tui                                 Launch the interactive UI

Categories: eating, toilette, sports, mood, sleeping
Time slots: morning, noon, evening, night (default: morning)`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		if len(args) == 0 {
			// No args: show the feed
			showFeed()
			return
		}

		// With args: log a new entry
		logEntry(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "user profile to act on")

	// Quick-log flags
	rootCmd.Flags().String("time", "", "time-of-day slot (morning, noon, evening, night)")
	rootCmd.Flags().String("date", "", "entry date (YYYY-MM-DD, default today)")
	rootCmd.Flags().String("emoji", "", "entry emoji (default: first emoji of the category)")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"daytrack version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// openServices initializes the service layer, reporting failures on stderr.
// Returns nil after calling deps.Exit when initialization fails.
func openServices() *service.Services {
	svcs, err := deps.Services()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to initialize storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return nil
	}
	return svcs
}

// activeUser resolves the user profile to act on, reporting failures on
// stderr. Returns "" after calling deps.Exit when no user can be resolved.
func activeUser(svcs *service.Services) string {
	user, err := svcs.ResolveUser(userFlag)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveUser):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No user profile selected")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Create one with 'daytrack user add <name>', or pass --user <name>")
		case errors.Is(err, service.ErrUserNotFound):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown user profile\n")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List profiles with 'daytrack user list'")
		default:
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to resolve user: %v\n", err)
		}
		deps.Exit(1)
		return ""
	}
	return user
}

// printWarning reports a corrupt-blob warning on stderr. The operation
// itself still succeeded; the corrupt content was set aside.
func printWarning(w *storage.Warning) {
	if w == nil {
		return
	}
	_, _ = fmt.Fprintf(deps.Stderr, "Warning: Stored data could not be read: %s\n", w.Err)
	_, _ = fmt.Fprintf(deps.Stderr, "  File: %s\n", w.Path)
	if w.Aside != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "  The unreadable content was kept at: %s\n", w.Aside)
	}
	_, _ = fmt.Fprintln(deps.Stderr)
}

// logEntry parses arguments and logs a new activity entry
func logEntry(cmd *cobra.Command, args []string) {
	cat, err := entry.ParseCategory(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: daytrack <category> [text...]")
		_, _ = fmt.Fprintln(deps.Stderr, "Example: daytrack eating lunch with Anna")
		deps.Exit(1)
		return
	}

	slot := entry.Morning
	if slotStr, _ := cmd.Flags().GetString("time"); slotStr != "" {
		slot, err = entry.ParseTimeOfDay(slotStr)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
	}

	date, _ := cmd.Flags().GetString("date")

	emoji, _ := cmd.Flags().GetString("emoji")
	if emoji == "" {
		emoji = cat.DefaultEmoji()
	}

	content := strings.Join(args[1:], " ")

	svcs := openServices()
	if svcs == nil {
		return
	}
	user := activeUser(svcs)
	if user == "" {
		return
	}

	created, warning, err := svcs.Entries(user).Create(date, slot, cat, emoji, content)
	printWarning(warning)
	if err != nil {
		reportEntryError(err, cat)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s %s · %s · %s", created.Emoji, created.Category, created.TimeOfDay, created.Date)
	if created.Content != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s", created.Content)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "  (id %s)\n", shortID(created.ID))
}

// reportEntryError writes a friendly message for entry validation errors
func reportEntryError(err error, cat entry.Category) {
	switch {
	case errors.Is(err, service.ErrEmptyEntry):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Entry needs some text or an emoji")
	case errors.Is(err, service.ErrEmojiMismatch):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: That emoji is not in the %s set\n", cat)
		_, _ = fmt.Fprintf(deps.Stderr, "Allowed: %s\n", strings.Join(cat.Emojis(), " "))
	case errors.Is(err, service.ErrInvalidCategory):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Unknown category")
	case errors.Is(err, service.ErrInvalidTimeOfDay):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Unknown time-of-day slot")
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to save entry: %v\n", err)
	}
}

// showFeed renders the reverse-chronological feed for the active user
func showFeed() {
	svcs := openServices()
	if svcs == nil {
		return
	}
	user := activeUser(svcs)
	if user == "" {
		return
	}

	items, warning, err := svcs.Feed(user).View("")
	printWarning(warning)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read entries: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Activity for %s\n", user)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	renderFeed(items, svcs.Config.Get().DateFormat)
}

// renderFeed writes feed items to stdout. Date headers honor the
// configured date format; an empty feed renders its placeholder line.
func renderFeed(items []feed.Item, dateFormat string) {
	for _, item := range items {
		switch item.Kind {
		case feed.ItemHeader:
			label := item.Label
			if dateFormat == "short" {
				label = item.Date
			}
			_, _ = fmt.Fprintf(deps.Stdout, "\n%s\n", label)
		case feed.ItemEntry:
			_, _ = fmt.Fprintln(deps.Stdout, formatEntryLine(item.Entry))
		case feed.ItemEmpty:
			_, _ = fmt.Fprintln(deps.Stdout, "No entries yet")
			_, _ = fmt.Fprintln(deps.Stdout, "Hint: Log one with 'daytrack <category> [text...]'")
		}
	}
}

// formatEntryLine renders one entry as a single feed line
func formatEntryLine(e entry.Entry) string {
	line := fmt.Sprintf("  [%s] %-7s %s", shortID(e.ID), e.TimeOfDay, e.Emoji)
	if e.Content != "" {
		line += "  " + e.Content
	}
	if e.Edited() {
		line += " (edited)"
	}
	return line
}

// shortID returns the display form of an entry id, enough of the
// uuid to address it unambiguously in practice.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
