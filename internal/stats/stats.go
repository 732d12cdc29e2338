// Package stats computes aggregate tallies over an entry collection.
// Pure functions only; callers load the collection.
package stats

import (
	"github.com/embli/daytrack/internal/entry"
)

// CategoryCount is the number of entries logged under one category
type CategoryCount struct {
	Category entry.Category
	Count    int
}

// SlotCount is the number of entries logged in one time-of-day slot
type SlotCount struct {
	Slot  entry.TimeOfDay
	Count int
}

// Summary contains aggregate statistics for a collection
type Summary struct {
	EntryCount      int
	DaysWithEntries int
	EditedCount     int
	ByCategory      []CategoryCount // in defined category order
	BySlot          []SlotCount     // in chronological slot order
	MostActiveDate  string          // date with the most entries, "" when empty
	MostActiveCount int
}

// Calculate computes a Summary over the given entries
func Calculate(entries []entry.Entry) Summary {
	s := Summary{}

	catCounts := make(map[entry.Category]int)
	slotCounts := make(map[entry.TimeOfDay]int)
	dayCounts := make(map[string]int)

	for _, e := range entries {
		s.EntryCount++
		if e.Edited() {
			s.EditedCount++
		}
		catCounts[e.Category]++
		slotCounts[e.TimeOfDay]++
		dayCounts[e.Date]++
	}

	s.DaysWithEntries = len(dayCounts)

	for _, c := range entry.Categories {
		s.ByCategory = append(s.ByCategory, CategoryCount{Category: c, Count: catCounts[c]})
	}
	for _, slot := range entry.TimesOfDay {
		s.BySlot = append(s.BySlot, SlotCount{Slot: slot, Count: slotCounts[slot]})
	}

	for date, count := range dayCounts {
		// Prefer the later date on equal counts so the result is
		// deterministic regardless of map iteration order.
		if count > s.MostActiveCount || (count == s.MostActiveCount && date > s.MostActiveDate) {
			s.MostActiveDate = date
			s.MostActiveCount = count
		}
	}

	return s
}
