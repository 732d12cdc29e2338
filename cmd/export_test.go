package cmd

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/embli/daytrack/internal/entry"
)

// resetExportFlags clears the export filter flags after a test
func resetExportFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		for _, c := range []*cobra.Command{exportJSONCmd, exportCSVCmd} {
			for _, name := range []string{"keyword", "category", "time", "date"} {
				f := c.Flags().Lookup(name)
				_ = f.Value.Set("")
				f.Changed = false
			}
		}
	})
}

func TestExportJSON(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	ct.seedEntry(t, "alice", "2025-11-18", entry.Noon, entry.CategoryEating, "🍔", "burger")
	ct.seedEntry(t, "alice", "2025-11-19", entry.Morning, entry.CategorySleeping, "🛌", "slept in")
	resetExportFlags(t)

	exportJSON(exportJSONCmd)

	if ct.ExitCode != 0 {
		t.Fatalf("Exit code = %d, stderr: %s", ct.ExitCode, ct.Stderr.String())
	}

	var doc exportDocument
	if err := json.Unmarshal(ct.Stdout.Bytes(), &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if doc.Metadata.User != "alice" {
		t.Errorf("Metadata.User = %q, want alice", doc.Metadata.User)
	}
	if doc.Metadata.TotalEntries != 2 || len(doc.Entries) != 2 {
		t.Fatalf("Expected 2 entries, metadata says %d, payload has %d", doc.Metadata.TotalEntries, len(doc.Entries))
	}
	// Feed order: newer date first
	if doc.Entries[0].Date != "2025-11-19" {
		t.Errorf("Entries[0].Date = %q, want newest date first", doc.Entries[0].Date)
	}
}

func TestExportJSONEmptyCollection(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	resetExportFlags(t)

	exportJSON(exportJSONCmd)

	var doc exportDocument
	if err := json.Unmarshal(ct.Stdout.Bytes(), &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if doc.Metadata.TotalEntries != 0 {
		t.Errorf("TotalEntries = %d, want 0", doc.Metadata.TotalEntries)
	}
}

func TestExportCSV(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	ct.seedEntry(t, "alice", "2025-11-18", entry.Noon, entry.CategoryEating, "🍔", "burger")
	resetExportFlags(t)

	exportCSV(exportCSVCmd)

	if ct.ExitCode != 0 {
		t.Fatalf("Exit code = %d, stderr: %s", ct.ExitCode, ct.Stderr.String())
	}

	records, err := csv.NewReader(strings.NewReader(ct.Stdout.String())).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header + 1 record, got %d rows", len(records))
	}

	header := strings.Join(records[0], ",")
	if header != "id,date,time_of_day,category,emoji,content,created_at,updated_at" {
		t.Errorf("Unexpected header: %s", header)
	}

	row := records[1]
	if row[1] != "2025-11-18" || row[2] != "Noon" || row[3] != "Eating" || row[4] != "🍔" || row[5] != "burger" {
		t.Errorf("Unexpected record: %v", row)
	}
	if row[7] != "" {
		t.Errorf("updated_at should be empty for an unedited entry, got %q", row[7])
	}
}

func TestExportCSVCategoryFilter(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	ct.seedEntry(t, "alice", "2025-11-18", entry.Noon, entry.CategoryEating, "🍔", "burger")
	ct.seedEntry(t, "alice", "2025-11-19", entry.Evening, entry.CategorySports, "🏃", "run")
	resetExportFlags(t)

	if err := exportCSVCmd.Flags().Set("category", "sports"); err != nil {
		t.Fatalf("Failed to set --category: %v", err)
	}
	exportCSV(exportCSVCmd)

	records, err := csv.NewReader(strings.NewReader(ct.Stdout.String())).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header + 1 record, got %d rows", len(records))
	}
	if records[1][3] != "Sports" {
		t.Errorf("Expected only the sports entry, got: %v", records[1])
	}
}

func TestExportJSONKeywordFilter(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	ct.seedEntry(t, "alice", "2025-11-18", entry.Noon, entry.CategoryEating, "🍔", "team lunch")
	ct.seedEntry(t, "alice", "2025-11-18", entry.Morning, entry.CategoryEating, "☕", "coffee")
	resetExportFlags(t)

	if err := exportJSONCmd.Flags().Set("keyword", "lunch"); err != nil {
		t.Fatalf("Failed to set --keyword: %v", err)
	}
	exportJSON(exportJSONCmd)

	var doc exportDocument
	if err := json.Unmarshal(ct.Stdout.Bytes(), &doc); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(doc.Entries) != 1 || doc.Entries[0].Content != "team lunch" {
		t.Errorf("Keyword filter failed: %+v", doc.Entries)
	}
}
