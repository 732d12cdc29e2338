package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/feed"
	"github.com/embli/daytrack/internal/filter"
)

// exportCmd represents the export parent command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries to various formats",
	Long: `Export activity entries for programmatic use, backup, or migration.

Available formats:
  json    Export entries as JSON
  csv     Export entries as CSV

Filtering:
  Use --keyword to match entry text or emoji
  Use --category to restrict to one category
  Use --time to restrict to one time-of-day slot
  Use --date to restrict to one date

Examples:
  daytrack export json                 Export all entries as JSON
  daytrack export json > backup.json   Export to file
  daytrack export csv --category mood  Export mood entries as CSV
  daytrack export csv --date 2025-11-18  Export one day as CSV`,
}

// exportJSONCmd represents the export json command
var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export entries as JSON",
	Long: `Export activity entries to JSON format.

Output includes metadata (export timestamp, user, total entries) and an
array of entry objects in feed order.`,
	Run: func(cmd *cobra.Command, args []string) {
		exportJSON(cmd)
	},
}

// exportCSVCmd represents the export csv command
var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export entries as CSV",
	Long: `Export activity entries to CSV format.

Output is in standard CSV format with a header row, entries in feed order.`,
	Run: func(cmd *cobra.Command, args []string) {
		exportCSV(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportCSVCmd)

	for _, c := range []*cobra.Command{exportJSONCmd, exportCSVCmd} {
		c.Flags().String("keyword", "", "match entry text or emoji")
		c.Flags().String("category", "", "restrict to one category")
		c.Flags().String("time", "", "restrict to one time-of-day slot")
		c.Flags().String("date", "", "restrict to one date (YYYY-MM-DD)")
	}
}

// exportMetadata describes an export in the JSON output header
type exportMetadata struct {
	ExportedAt   time.Time `json:"exported_at"`
	User         string    `json:"user"`
	TotalEntries int       `json:"total_entries"`
}

// exportDocument is the top-level JSON export structure
type exportDocument struct {
	Metadata exportMetadata `json:"metadata"`
	Entries  []entry.Entry  `json:"entries"`
}

// collectExportEntries loads and filters the active user's entries in
// feed order. Returns ok=false after reporting any failure.
func collectExportEntries(cmd *cobra.Command) (user string, entries []entry.Entry, ok bool) {
	f, ok := filterFromFlags(cmd)
	if !ok {
		return "", nil, false
	}
	f.Keyword, _ = cmd.Flags().GetString("keyword")

	svcs := openServices()
	if svcs == nil {
		return "", nil, false
	}
	user = activeUser(svcs)
	if user == "" {
		return "", nil, false
	}

	// Search with an empty query is a no-op, so go through the entry
	// service and sort explicitly.
	all, warning, err := svcs.Entries(user).List()
	printWarning(warning)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read entries: %v\n", err)
		deps.Exit(1)
		return "", nil, false
	}

	return user, filter.Apply(feed.Sorted(all), f), true
}

// exportJSON writes the filtered entries as a JSON document to stdout
func exportJSON(cmd *cobra.Command) {
	user, entries, ok := collectExportEntries(cmd)
	if !ok {
		return
	}

	doc := exportDocument{
		Metadata: exportMetadata{
			ExportedAt:   time.Now().UTC(),
			User:         user,
			TotalEntries: len(entries),
		},
		Entries: entries,
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to encode JSON: %v\n", err)
		deps.Exit(1)
		return
	}
}

// exportCSV writes the filtered entries as CSV to stdout
func exportCSV(cmd *cobra.Command) {
	_, entries, ok := collectExportEntries(cmd)
	if !ok {
		return
	}

	w := csv.NewWriter(deps.Stdout)
	header := []string{"id", "date", "time_of_day", "category", "emoji", "content", "created_at", "updated_at"}
	if err := w.Write(header); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to write CSV: %v\n", err)
		deps.Exit(1)
		return
	}

	for _, e := range entries {
		updatedAt := ""
		if e.UpdatedAt != nil {
			updatedAt = e.UpdatedAt.Format(time.RFC3339)
		}
		record := []string{
			e.ID,
			e.Date,
			string(e.TimeOfDay),
			string(e.Category),
			e.Emoji,
			e.Content,
			e.CreatedAt.Format(time.RFC3339),
			updatedAt,
		}
		if err := w.Write(record); err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to write CSV: %v\n", err)
			deps.Exit(1)
			return
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to write CSV: %v\n", err)
		deps.Exit(1)
		return
	}
}
