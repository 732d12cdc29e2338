package entry

import (
	"fmt"
	"strings"
)

// TimeOfDay is a coarse time slot, not a timestamp
type TimeOfDay string

// Defined time-of-day slots
const (
	Morning TimeOfDay = "Morning"
	Noon    TimeOfDay = "Noon"
	Evening TimeOfDay = "Evening"
	Night   TimeOfDay = "Night"
)

// TimesOfDay lists all slots in chronological order
var TimesOfDay = []TimeOfDay{Morning, Noon, Evening, Night}

// timeOfDayOrder maps slots to their chronological ordinal,
// used for within-day feed ordering.
var timeOfDayOrder = map[TimeOfDay]int{
	Morning: 0,
	Noon:    1,
	Evening: 2,
	Night:   3,
}

// Valid reports whether t is a defined slot
func (t TimeOfDay) Valid() bool {
	_, ok := timeOfDayOrder[t]
	return ok
}

// Ordinal returns the slot's chronological position (Morning=0 .. Night=3).
// Unknown slots sort after all defined ones.
func (t TimeOfDay) Ordinal() int {
	ord, ok := timeOfDayOrder[t]
	if !ok {
		return len(timeOfDayOrder)
	}
	return ord
}

// ParseTimeOfDay resolves a user-supplied slot name, matching
// case-insensitively against the defined slots.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, slot := range TimesOfDay {
		if strings.EqualFold(string(slot), s) {
			return slot, nil
		}
	}

	names := make([]string, len(TimesOfDay))
	for i, slot := range TimesOfDay {
		names[i] = strings.ToLower(string(slot))
	}
	return "", fmt.Errorf("unknown time of day %q (valid: %s)", s, strings.Join(names, ", "))
}
