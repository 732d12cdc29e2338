package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/service"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing entry",
	Long: `Edit an activity entry addressed by its id or a unique id prefix.

Fields you do not pass a flag for keep their current value. Changing the
category also changes the emoji to the new category's default, unless the
current emoji belongs to the new category's set or you pass --emoji.

Usage:
  daytrack edit <id> --text 'new text'
  daytrack edit <id> --category sports
  daytrack edit <id> --time evening --date 2025-11-18
  daytrack edit <id> --emoji 🍎

At least one flag is required.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editEntry(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().String("text", "", "new entry text")
	editCmd.Flags().String("category", "", "new category (eating, toilette, sports, mood, sleeping)")
	editCmd.Flags().String("time", "", "new time-of-day slot (morning, noon, evening, night)")
	editCmd.Flags().String("date", "", "new entry date (YYYY-MM-DD)")
	editCmd.Flags().String("emoji", "", "new entry emoji")
}

// editEntry modifies an existing activity entry
func editEntry(cmd *cobra.Command, idArg string) {
	textFlag, _ := cmd.Flags().GetString("text")
	catFlag, _ := cmd.Flags().GetString("category")
	timeFlag, _ := cmd.Flags().GetString("time")
	dateFlag, _ := cmd.Flags().GetString("date")
	emojiFlag, _ := cmd.Flags().GetString("emoji")

	if !cmd.Flags().Changed("text") && catFlag == "" && timeFlag == "" && dateFlag == "" && emojiFlag == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: At least one flag is required")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage:")
		_, _ = fmt.Fprintln(deps.Stderr, "  daytrack edit <id> --text 'new text'")
		_, _ = fmt.Fprintln(deps.Stderr, "  daytrack edit <id> --category sports --time evening")
		deps.Exit(1)
		return
	}

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

	// Seed the working values from the current entry, then apply flags.
	date := target.Date
	slot := target.TimeOfDay
	cat := target.Category
	emoji := target.Emoji
	content := target.Content

	if dateFlag != "" {
		date = dateFlag
	}
	if timeFlag != "" {
		slot, err = entry.ParseTimeOfDay(timeFlag)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
	}
	if catFlag != "" {
		cat, err = entry.ParseCategory(catFlag)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		// Category changed: keep the emoji only if the new category
		// allows it, otherwise fall back to the category default.
		if !cat.AllowsEmoji(emoji) {
			emoji = cat.DefaultEmoji()
		}
	}
	if emojiFlag != "" {
		emoji = emojiFlag
	}
	if cmd.Flags().Changed("text") {
		content = textFlag
	}

	updated, warning, err := entries.Update(target.ID, date, slot, cat, emoji, content)
	printWarning(warning)
	if err != nil {
		reportEntryError(err, cat)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Updated %s: %s %s · %s · %s", shortID(updated.ID), updated.Emoji, updated.Category, updated.TimeOfDay, updated.Date)
	if updated.Content != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "  %s", updated.Content)
	}
	_, _ = fmt.Fprintln(deps.Stdout)
}
