// Package filter narrows entry collections by keyword, category, time
// slot, and date. Used by the search and export commands.
package filter

import (
	"strings"

	"github.com/embli/daytrack/internal/entry"
)

// Filter represents search and filtering criteria for activity entries.
// All filter fields are optional - empty values match all entries.
type Filter struct {
	Keyword   string          // Case-insensitive substring search in entry content
	Category  entry.Category  // Exact category match
	TimeOfDay entry.TimeOfDay // Exact time slot match
	Date      string          // Exact date match (YYYY-MM-DD)
}

// New creates a new Filter with the given criteria.
// All parameters are optional - pass empty values to match all entries.
func New(keyword string, category entry.Category, timeOfDay entry.TimeOfDay, date string) *Filter {
	return &Filter{
		Keyword:   keyword,
		Category:  category,
		TimeOfDay: timeOfDay,
		Date:      date,
	}
}

// IsEmpty returns true if all filter fields are empty (matches all entries)
func (f *Filter) IsEmpty() bool {
	return f.Keyword == "" && f.Category == "" && f.TimeOfDay == "" && f.Date == ""
}

// Apply returns a new slice containing only entries that match the filter
// criteria. If the filter is empty, returns all entries.
func Apply(entries []entry.Entry, f *Filter) []entry.Entry {
	if f.IsEmpty() {
		return entries
	}

	filtered := make([]entry.Entry, 0)
	for _, e := range entries {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// MatchesKeyword returns true if the keyword is found in the entry's content
// or matches its emoji (case-insensitive). An empty keyword matches all entries.
func (f *Filter) MatchesKeyword(e entry.Entry) bool {
	if f.Keyword == "" {
		return true
	}
	if e.Emoji == f.Keyword {
		return true
	}
	return strings.Contains(strings.ToLower(e.Content), strings.ToLower(f.Keyword))
}

// MatchesCategory returns true if the entry's category matches the filter.
// An empty category filter matches all entries.
func (f *Filter) MatchesCategory(e entry.Entry) bool {
	if f.Category == "" {
		return true
	}
	return e.Category == f.Category
}

// MatchesTimeOfDay returns true if the entry's time slot matches the filter.
// An empty time slot filter matches all entries.
func (f *Filter) MatchesTimeOfDay(e entry.Entry) bool {
	if f.TimeOfDay == "" {
		return true
	}
	return e.TimeOfDay == f.TimeOfDay
}

// MatchesDate returns true if the entry's date matches the filter exactly.
// An empty date filter matches all entries.
func (f *Filter) MatchesDate(e entry.Entry) bool {
	if f.Date == "" {
		return true
	}
	return e.Date == f.Date
}

// Matches returns true if the entry satisfies every criterion in the filter.
func (f *Filter) Matches(e entry.Entry) bool {
	return f.MatchesKeyword(e) && f.MatchesCategory(e) && f.MatchesTimeOfDay(e) && f.MatchesDate(e)
}
