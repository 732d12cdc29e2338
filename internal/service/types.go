// Package service provides the business logic layer for the daytrack
// application. It wraps the storage, feed, stats, and config packages,
// providing a clean API for both the CLI and TUI frontends.
package service

import (
	"errors"
)

// Validation and lookup errors shared across services
var (
	ErrEmptyEntry       = errors.New("entry must have content or an emoji")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrEmojiMismatch    = errors.New("emoji does not belong to the selected category")
	ErrNotFound         = errors.New("entry not found")

	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrNoActiveUser = errors.New("no active user: pass --user or set default_user in the config")
)
