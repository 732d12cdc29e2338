// Package feed derives the display-ready, date-grouped view of an entry
// collection. Everything here is a pure function of its input; persistence
// and rendering live elsewhere.
package feed

import (
	"sort"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/timeutil"
)

// ItemKind discriminates the items of a built feed
type ItemKind int

const (
	// ItemHeader starts a new date group
	ItemHeader ItemKind = iota
	// ItemEntry is one entry within the current date group
	ItemEntry
	// ItemEmpty is the single placeholder item of an empty feed
	ItemEmpty
)

// Item is one element of a built feed. A feed is a flat ordered sequence
// of headers and entries; an empty collection yields exactly one ItemEmpty
// so renderers never special-case the empty feed.
type Item struct {
	Kind  ItemKind
	Label string      // group label, set on headers
	Date  string      // group date, set on headers
	Entry entry.Entry // set on entry items
}

// Sorted returns a copy of entries in feed order: date descending, then
// time-of-day slot ascending within a date, then creation time descending
// within a slot. Lexical comparison of YYYY-MM-DD dates matches
// chronological order, so dates compare as plain strings.
func Sorted(entries []entry.Entry) []entry.Entry {
	out := make([]entry.Entry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if oi, oj := out[i].TimeOfDay.Ordinal(), out[j].TimeOfDay.Ordinal(); oi != oj {
			return oi < oj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

// Label returns the group label for a date relative to the reference date:
// "Today", "Yesterday", or the long-form date.
func Label(date, refDate string) string {
	switch date {
	case refDate:
		return "Today"
	case timeutil.PrevDay(refDate):
		return "Yesterday"
	default:
		return timeutil.FormatLong(date)
	}
}

// Build sorts entries into feed order and partitions them into contiguous
// date groups, each prefixed with a header item. refDate is the calendar
// date treated as "today". An empty collection yields a single ItemEmpty.
func Build(entries []entry.Entry, refDate string) []Item {
	if len(entries) == 0 {
		return []Item{{Kind: ItemEmpty}}
	}

	sorted := Sorted(entries)

	items := make([]Item, 0, len(sorted)+1)
	currentDate := ""
	for _, e := range sorted {
		if e.Date != currentDate {
			currentDate = e.Date
			items = append(items, Item{
				Kind:  ItemHeader,
				Label: Label(e.Date, refDate),
				Date:  e.Date,
			})
		}
		items = append(items, Item{Kind: ItemEntry, Entry: e})
	}

	return items
}
