package ui

import "github.com/embli/daytrack/internal/entry"

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// ComposeNewMsg asks the root model to switch to the compose view with a
// fresh editing session.
type ComposeNewMsg struct{}

// EditEntryMsg asks the root model to switch to the compose view seeded
// from an existing entry.
type EditEntryMsg struct {
	Entry entry.Entry
}

// EntrySavedMsg is broadcast after the compose view commits an entry so
// other views can reload.
type EntrySavedMsg struct {
	ID string
}
