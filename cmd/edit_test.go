package cmd

import (
	"strings"
	"testing"

	"github.com/embli/daytrack/internal/entry"
)

// resetEditFlags clears edit flag values and their changed state after a test
func resetEditFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		for _, name := range []string{"text", "category", "time", "date", "emoji"} {
			f := editCmd.Flags().Lookup(name)
			_ = f.Value.Set("")
			f.Changed = false
		}
	})
}

func setEditFlag(t *testing.T, name, value string) {
	t.Helper()
	if err := editCmd.Flags().Set(name, value); err != nil {
		t.Fatalf("Failed to set --%s: %v", name, err)
	}
}

func TestEditEntryText(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	e := ct.seedEntry(t, "alice", "2025-11-18", entry.Noon, entry.CategoryEating, "🍔", "burger")
	resetEditFlags(t)

	setEditFlag(t, "text", "double burger")
	editEntry(editCmd, shortID(e.ID))

	if ct.ExitCode != 0 {
		t.Fatalf("Exit code = %d, stderr: %s", ct.ExitCode, ct.Stderr.String())
	}

	got, _, err := ct.Services.Entries("alice").Get(e.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Content != "double burger" {
		t.Errorf("Content = %q, want updated text", got.Content)
	}
	if got.UpdatedAt == nil {
		t.Error("UpdatedAt should be set after an edit")
	}
	if got.Date != e.Date || got.TimeOfDay != e.TimeOfDay || got.Category != e.Category || got.Emoji != e.Emoji {
		t.Error("Unflagged fields should keep their values")
	}
}

func TestEditEntryCategorySnapsEmoji(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	e := ct.seedEntry(t, "alice", "2025-11-18", entry.Noon, entry.CategoryEating, "🍔", "burger")
	resetEditFlags(t)

	setEditFlag(t, "category", "sports")
	editEntry(editCmd, shortID(e.ID))

	if ct.ExitCode != 0 {
		t.Fatalf("Exit code = %d, stderr: %s", ct.ExitCode, ct.Stderr.String())
	}

	got, _, _ := ct.Services.Entries("alice").Get(e.ID)
	if got.Category != entry.CategorySports {
		t.Errorf("Category = %q, want Sports", got.Category)
	}
	if got.Emoji != "🏃" {
		t.Errorf("Emoji = %q, want Sports default 🏃", got.Emoji)
	}
}

func TestEditEntryCategoryKeepsSharedEmoji(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	// 😴 belongs to both Mood and Sleeping
	e := ct.seedEntry(t, "alice", "2025-11-18", entry.Night, entry.CategoryMood, "😴", "so tired")
	resetEditFlags(t)

	setEditFlag(t, "category", "sleeping")
	editEntry(editCmd, shortID(e.ID))

	got, _, _ := ct.Services.Entries("alice").Get(e.ID)
	if got.Category != entry.CategorySleeping {
		t.Errorf("Category = %q, want Sleeping", got.Category)
	}
	if got.Emoji != "😴" {
		t.Errorf("Emoji = %q, shared emoji should be kept", got.Emoji)
	}
}

func TestEditEntryExplicitEmojiWins(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	e := ct.seedEntry(t, "alice", "2025-11-18", entry.Noon, entry.CategoryEating, "🍔", "burger")
	resetEditFlags(t)

	setEditFlag(t, "category", "sports")
	setEditFlag(t, "emoji", "🏊")
	editEntry(editCmd, shortID(e.ID))

	got, _, _ := ct.Services.Entries("alice").Get(e.ID)
	if got.Emoji != "🏊" {
		t.Errorf("Emoji = %q, explicit flag should win", got.Emoji)
	}
}

func TestEditEntryNoFlags(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	e := ct.seedEntry(t, "alice", "2025-11-18", entry.Noon, entry.CategoryEating, "🍔", "burger")
	resetEditFlags(t)

	editEntry(editCmd, shortID(e.ID))

	if ct.ExitCode != 1 {
		t.Errorf("Exit code = %d, want 1", ct.ExitCode)
	}
	if !strings.Contains(ct.Stderr.String(), "At least one flag is required") {
		t.Errorf("Expected flag-required error, got: %s", ct.Stderr.String())
	}
}

func TestEditEntryUnknownID(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	resetEditFlags(t)

	setEditFlag(t, "text", "whatever")
	editEntry(editCmd, "ffffffff")

	if ct.ExitCode != 1 {
		t.Errorf("Exit code = %d, want 1", ct.ExitCode)
	}
	if !strings.Contains(ct.Stderr.String(), "No single entry matches") {
		t.Errorf("Expected not-found error, got: %s", ct.Stderr.String())
	}
}

func TestEditEntryClearTextToEmojiOnly(t *testing.T) {
	ct := setupCmdTest(t)
	ct.addUser(t, "alice")
	e := ct.seedEntry(t, "alice", "2025-11-18", entry.Noon, entry.CategoryEating, "🍔", "burger")
	resetEditFlags(t)

	setEditFlag(t, "text", "")
	editEntry(editCmd, shortID(e.ID))

	if ct.ExitCode != 0 {
		t.Fatalf("Exit code = %d, stderr: %s", ct.ExitCode, ct.Stderr.String())
	}

	got, _, _ := ct.Services.Entries("alice").Get(e.ID)
	if got.Content != "" {
		t.Errorf("Content = %q, want cleared (emoji keeps the entry valid)", got.Content)
	}
}
