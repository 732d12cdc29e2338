// Package session tracks the ephemeral compose/edit state of the UI: the
// working selection (date, time slot, category, emoji, text) and which
// stored entry, if any, is being edited in place. Nothing here is
// persisted; committing or cancelling always returns the session to the
// idle state.
package session

import (
	"github.com/embli/daytrack/internal/entry"
)

// DefaultCategory is the category selected when no edit is in progress
const DefaultCategory = entry.CategoryEating

// DefaultTimeOfDay is the slot selected when no edit is in progress
const DefaultTimeOfDay = entry.Morning

// Session is the working selection state. At most one edit is in flight
// at a time; beginning a new edit silently replaces the previous session.
type Session struct {
	Date      string
	TimeOfDay entry.TimeOfDay
	Category  entry.Category
	Emoji     string
	Content   string

	editingID   string
	seededEmoji string // emoji the edit was seeded with, for the preserve rule
}

// New returns an idle session with the default selection for the given
// current date.
func New(today string) *Session {
	s := &Session{}
	s.Reset(today)
	return s
}

// Editing reports whether an edit is in progress
func (s *Session) Editing() bool {
	return s.editingID != ""
}

// EditingID returns the id of the entry being edited, or "" when idle
func (s *Session) EditingID() string {
	return s.editingID
}

// BeginEdit seeds the working selection from the target entry and enters
// the editing state. Allowed regardless of current state: a new target
// replaces any in-flight session without stacking.
func (s *Session) BeginEdit(e entry.Entry) {
	s.editingID = e.ID
	s.seededEmoji = e.Emoji
	s.Date = e.Date
	s.TimeOfDay = e.TimeOfDay
	s.Category = e.Category
	s.Emoji = e.Emoji
	s.Content = e.Content
}

// Cancel discards the working selection without touching the stored
// collection and returns to the idle state.
func (s *Session) Cancel(today string) {
	s.Reset(today)
}

// Commit leaves the editing state after a successful save and resets the
// selection. It returns the id that was being edited, or "" when the
// session was idle (a plain create).
func (s *Session) Commit(today string) string {
	id := s.editingID
	s.Reset(today)
	return id
}

// Reset returns the session to the idle default selection:
// today's date, Morning, Eating, and Eating's first emoji.
func (s *Session) Reset(today string) {
	s.editingID = ""
	s.seededEmoji = ""
	s.Date = today
	s.TimeOfDay = DefaultTimeOfDay
	s.Category = DefaultCategory
	s.Emoji = DefaultCategory.DefaultEmoji()
	s.Content = ""
}

// SetCategory switches the working category and adjusts the emoji
// selection. Without an active edit the emoji always snaps to the new
// category's first emoji. During an edit the seeded emoji is preserved
// when it still belongs to the new category's set; anything else snaps.
func (s *Session) SetCategory(c entry.Category) {
	s.Category = c

	if s.Editing() && s.Emoji == s.seededEmoji && c.AllowsEmoji(s.seededEmoji) {
		return
	}
	s.Emoji = c.DefaultEmoji()
}
