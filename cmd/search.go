package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/filter"
	"github.com/embli/daytrack/internal/timeutil"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search entries by keyword",
	Long: `Search activity entries by keyword. The search is case-insensitive
and matches entry text, category names, and exact emoji.

Results can be narrowed further:
  Use --category to restrict to one category
  Use --time to restrict to one time-of-day slot
  Use --date to restrict to one date

Examples:
  daytrack search lunch                    Entries mentioning 'lunch'
  daytrack search 🏃                       Entries with the running emoji
  daytrack search run --category sports    Sports entries mentioning 'run'
  daytrack search nap --date 2025-11-18    Matches on one specific day`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		searchEntries(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("category", "", "restrict to one category")
	searchCmd.Flags().String("time", "", "restrict to one time-of-day slot")
	searchCmd.Flags().String("date", "", "restrict to one date (YYYY-MM-DD)")
}

// searchEntries handles the search command logic
func searchEntries(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")

	f, ok := filterFromFlags(cmd)
	if !ok {
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

	matches, warning, err := svcs.Search(user).Search(query)
	printWarning(warning)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read entries: %v\n", err)
		deps.Exit(1)
		return
	}

	matches = filter.Apply(matches, f)

	if len(matches) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries matching %q\n", query)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries matching %q:\n", query)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	for _, e := range matches {
		_, _ = fmt.Fprintf(deps.Stdout, "%s  %s\n", e.Date, strings.TrimLeft(formatEntryLine(e), " "))
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "%d %s found\n", len(matches), pluralize("entry", "entries", len(matches)))
}

// filterFromFlags builds a Filter from the shared --category/--time/--date
// flags. Returns ok=false after reporting an invalid flag value.
func filterFromFlags(cmd *cobra.Command) (*filter.Filter, bool) {
	f := &filter.Filter{}

	if catStr, _ := cmd.Flags().GetString("category"); catStr != "" {
		cat, err := entry.ParseCategory(catStr)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return nil, false
		}
		f.Category = cat
	}

	if timeStr, _ := cmd.Flags().GetString("time"); timeStr != "" {
		slot, err := entry.ParseTimeOfDay(timeStr)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return nil, false
		}
		f.TimeOfDay = slot
	}

	if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
		date, err := timeutil.ParseDate(dateStr)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return nil, false
		}
		f.Date = date
	}

	return f, true
}

// pluralize returns the singular or plural form based on count
func pluralize(singular, plural string, count int) string {
	if count == 1 {
		return singular
	}
	return plural
}
