package entry

import (
	"fmt"
	"strings"
)

// Category is the activity category an entry is logged under
type Category string

// Defined categories
const (
	CategoryEating   Category = "Eating"
	CategoryToilette Category = "Toilette"
	CategorySports   Category = "Sports"
	CategoryMood     Category = "Mood"
	CategorySleeping Category = "Sleeping"
)

// Categories lists all defined categories in display order
var Categories = []Category{
	CategoryEating,
	CategoryToilette,
	CategorySports,
	CategoryMood,
	CategorySleeping,
}

// categoryEmojis maps each category to its fixed set of allowed emojis.
// The first emoji of each set is the default selection for that category.
var categoryEmojis = map[Category][]string{
	CategoryEating:   {"🥗", "🍔", "🍎", "☕", "🥤", "🍫"},
	CategoryToilette: {"💧", "💩", "🚽"},
	CategorySports:   {"🏃", "🏋️", "🧘", "🚴", "🏊"},
	CategoryMood:     {"😊", "😐", "😢", "😡", "😴", "🤩"},
	CategorySleeping: {"😴", "🛌", "🌙"},
}

// Valid reports whether c is a defined category
func (c Category) Valid() bool {
	_, ok := categoryEmojis[c]
	return ok
}

// Emojis returns the allowed emoji set for the category.
// Returns a copy so callers cannot mutate the defined set.
func (c Category) Emojis() []string {
	set, ok := categoryEmojis[c]
	if !ok {
		return nil
	}
	out := make([]string, len(set))
	copy(out, set)
	return out
}

// AllowsEmoji reports whether emoji belongs to the category's emoji set
func (c Category) AllowsEmoji(emoji string) bool {
	for _, e := range categoryEmojis[c] {
		if e == emoji {
			return true
		}
	}
	return false
}

// DefaultEmoji returns the first emoji of the category's set,
// or "" for an unknown category.
func (c Category) DefaultEmoji() string {
	set := categoryEmojis[c]
	if len(set) == 0 {
		return ""
	}
	return set[0]
}

// ParseCategory resolves a user-supplied category name, matching
// case-insensitively against the defined categories.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}

	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = strings.ToLower(string(c))
	}
	return "", fmt.Errorf("unknown category %q (valid: %s)", s, strings.Join(names, ", "))
}
