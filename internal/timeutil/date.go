// Package timeutil provides calendar-date helpers for the daytrack
// application. Entries are logged against plain YYYY-MM-DD dates rather
// than timestamps, so most helpers work on date strings.
package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the canonical storage format for entry dates.
// Lexical comparison of dates in this layout matches chronological order.
const DateLayout = "2006-01-02"

// LongDateLayout is the long-form display format for feed group headers
const LongDateLayout = "Monday, January 2, 2006"

var yearOnlyRe = regexp.MustCompile(`^\d{4}$`)
var partialRe = regexp.MustCompile(`^\d{4}-\d{1,2}$`)

// ParseDate validates a date string in YYYY-MM-DD format and returns its
// canonical form. Returns an error with the expected format for anything
// else.
func ParseDate(input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("date cannot be empty (use format YYYY-MM-DD, e.g., 2025-11-20)")
	}

	t, err := time.ParseInLocation(DateLayout, input, time.Local)
	if err == nil {
		return t.Format(DateLayout), nil
	}

	switch {
	case yearOnlyRe.MatchString(input):
		return "", fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case partialRe.MatchString(input):
		return "", fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	default:
		return "", fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD, e.g., 2025-11-20)", input)
	}
}

// Today returns the current calendar date as a YYYY-MM-DD string
func Today() string {
	return time.Now().Format(DateLayout)
}

// DateOf returns the calendar date of t as a YYYY-MM-DD string
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// PrevDay returns the calendar day before the given date string.
// The input must be a valid YYYY-MM-DD date.
func PrevDay(date string) string {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

// NextDay returns the calendar day after the given date string.
// The input must be a valid YYYY-MM-DD date.
func NextDay(date string) string {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, 1).Format(DateLayout)
}

// FormatLong renders a YYYY-MM-DD date string in long form,
// e.g. "Thursday, November 20, 2025". Unparseable input is returned as-is.
func FormatLong(date string) string {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return t.Format(LongDateLayout)
}
