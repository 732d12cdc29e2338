package views

import (
	"fmt"
	"strings"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/feed"
	"github.com/embli/daytrack/internal/tui/ui"
)

// FeedRenderOptions configures how a built feed is rendered
type FeedRenderOptions struct {
	Width      int  // Available width for rendering
	Cursor     int  // Item index of the selected entry (-1 for none)
	ShortDates bool // Render date headers as YYYY-MM-DD instead of labels
}

// RenderFeed renders a date-grouped feed with the cursor highlighted.
// The cursor is an index into items; headers are never selectable.
func RenderFeed(items []feed.Item, styles ui.Styles, opts FeedRenderOptions) string {
	var b strings.Builder

	for i, item := range items {
		switch item.Kind {
		case feed.ItemHeader:
			if i > 0 {
				b.WriteString("\n")
			}
			label := item.Label
			if opts.ShortDates {
				label = item.Date
			}
			b.WriteString(styles.DateHeader.Render(label))
			b.WriteString("\n")

		case feed.ItemEntry:
			line := formatEntryRow(item.Entry, styles, opts.Width)
			if i == opts.Cursor {
				line = styles.EntrySelected.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")

		case feed.ItemEmpty:
			b.WriteString(styles.StatLabel.Render("No entries yet"))
			b.WriteString("\n\n")
			b.WriteString(styles.StatLabel.Render("Press 'n' to log your first entry"))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// formatEntryRow renders one entry as an aligned feed row
func formatEntryRow(e entry.Entry, styles ui.Styles, width int) string {
	slot := styles.EntryTime.Render(fmt.Sprintf("[%s]", e.TimeOfDay))
	cat := styles.EntryCategory.Render(string(e.Category))

	content := e.Content
	maxContent := width - 26
	if maxContent < 20 {
		maxContent = 20
	}
	if len(content) > maxContent {
		content = content[:maxContent-1] + "…"
	}

	row := fmt.Sprintf("  %s %s %s  %s", slot, cat, e.Emoji, styles.EntryContent.Render(content))
	if e.Edited() {
		row += " " + styles.EntryEdited.Render("(edited)")
	}
	return row
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
