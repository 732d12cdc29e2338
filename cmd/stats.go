package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics for your entries",
	Long: `Show aggregated statistics for the active user's activity entries.

Displays:
  - Total number of entries and how many were edited
  - Number of distinct days with at least one entry
  - Breakdown by category and by time-of-day slot
  - The most active day

Example:
  daytrack stats
  daytrack stats --user alice`,
	Run: func(cmd *cobra.Command, args []string) {
		runStats()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats handles the stats command logic
func runStats() {
	svcs := openServices()
	if svcs == nil {
		return
	}
	user := activeUser(svcs)
	if user == "" {
		return
	}

	summary, warning, err := svcs.Stats(user).Summary()
	printWarning(warning)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read entries: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Statistics for %s\n", user)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	if summary.EntryCount == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries yet")
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Log one with 'daytrack <category> [text...]'")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries:          %d\n", summary.EntryCount)
	_, _ = fmt.Fprintf(deps.Stdout, "Edited:           %d\n", summary.EditedCount)
	_, _ = fmt.Fprintf(deps.Stdout, "Days with entries: %d\n", summary.DaysWithEntries)
	if summary.MostActiveDate != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Most active day:  %s (%d %s)\n",
			summary.MostActiveDate, summary.MostActiveCount,
			pluralize("entry", "entries", summary.MostActiveCount))
	}

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "By category:")
	for _, c := range summary.ByCategory {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-10s %d\n", c.Category, c.Count)
	}

	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "By time of day:")
	for _, s := range summary.BySlot {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-10s %d\n", s.Slot, s.Count)
	}
}
