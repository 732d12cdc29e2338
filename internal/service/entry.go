package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/storage"
	"github.com/embli/daytrack/internal/timeutil"
)

// EntryService provides the record lifecycle for one user's collection:
// create, full-record update, delete, and list. Save-time invariants are
// enforced here rather than trusted to the UI layer.
type EntryService struct {
	collectionPath string

	// Injectable for tests
	now   func() time.Time
	newID func() string
}

// NewEntryService creates an EntryService over the given collection blob
func NewEntryService(collectionPath string) *EntryService {
	return &EntryService{
		collectionPath: collectionPath,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

// validate checks the save-time invariants and returns the canonical date.
// Content is trimmed before the emptiness check, matching what is stored.
func validate(date string, slot entry.TimeOfDay, cat entry.Category, emoji, content string) (canonDate, trimmed string, err error) {
	canonDate, err = timeutil.ParseDate(date)
	if err != nil {
		return "", "", err
	}

	if !slot.Valid() {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, slot)
	}
	if !cat.Valid() {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidCategory, cat)
	}

	trimmed = strings.TrimSpace(content)
	if trimmed == "" && emoji == "" {
		return "", "", ErrEmptyEntry
	}
	if emoji != "" && !cat.AllowsEmoji(emoji) {
		return "", "", fmt.Errorf("%w: %q is not in %q", ErrEmojiMismatch, emoji, cat)
	}

	return canonDate, trimmed, nil
}

// Create validates the fields, assigns a fresh id and creation time,
// appends the entry, and persists the full collection. A warning is
// returned alongside the entry when the stored blob was corrupt and had
// to be treated as empty.
func (s *EntryService) Create(date string, slot entry.TimeOfDay, cat entry.Category, emoji, content string) (*entry.Entry, *storage.Warning, error) {
	canonDate, trimmed, err := validate(date, slot, cat, emoji, content)
	if err != nil {
		return nil, nil, err
	}

	entries, warning, err := storage.LoadCollection(s.collectionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read collection: %w", err)
	}

	e := entry.Entry{
		ID:        s.newID(),
		Date:      canonDate,
		TimeOfDay: slot,
		Category:  cat,
		Emoji:     emoji,
		Content:   trimmed,
		CreatedAt: s.now(),
	}

	entries = append(entries, e)
	if err := storage.SaveCollection(s.collectionPath, entries); err != nil {
		return nil, warning, fmt.Errorf("failed to save entry: %w", err)
	}

	return &e, warning, nil
}

// Update performs a full replace of the entry's mutable fields, preserving
// its id and creation time and stamping UpdatedAt. There is no merge: every
// field takes the supplied value. Returns ErrNotFound, with no mutation,
// when the id is absent.
func (s *EntryService) Update(id, date string, slot entry.TimeOfDay, cat entry.Category, emoji, content string) (*entry.Entry, *storage.Warning, error) {
	canonDate, trimmed, err := validate(date, slot, cat, emoji, content)
	if err != nil {
		return nil, nil, err
	}

	entries, warning, err := storage.LoadCollection(s.collectionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read collection: %w", err)
	}

	idx := -1
	for i := range entries {
		if entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, warning, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := storage.CreateBackup(s.collectionPath); err != nil {
		return nil, warning, fmt.Errorf("failed to back up collection: %w", err)
	}

	updatedAt := s.now()
	e := entries[idx]
	e.Date = canonDate
	e.TimeOfDay = slot
	e.Category = cat
	e.Emoji = emoji
	e.Content = trimmed
	e.UpdatedAt = &updatedAt
	entries[idx] = e

	if err := storage.SaveCollection(s.collectionPath, entries); err != nil {
		return nil, warning, fmt.Errorf("failed to save entry: %w", err)
	}

	return &e, warning, nil
}

// Delete removes the entry with the given id if present and persists the
// remainder. Idempotent: a missing id is a safe no-op reported as false.
func (s *EntryService) Delete(id string) (bool, *storage.Warning, error) {
	entries, warning, err := storage.LoadCollection(s.collectionPath)
	if err != nil {
		return false, nil, fmt.Errorf("failed to read collection: %w", err)
	}

	remaining := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == len(entries) {
		return false, warning, nil
	}

	if err := storage.CreateBackup(s.collectionPath); err != nil {
		return false, warning, fmt.Errorf("failed to back up collection: %w", err)
	}

	if err := storage.SaveCollection(s.collectionPath, remaining); err != nil {
		return false, warning, fmt.Errorf("failed to save collection: %w", err)
	}

	return true, warning, nil
}

// List returns the full collection as stored, unsorted
func (s *EntryService) List() ([]entry.Entry, *storage.Warning, error) {
	entries, warning, err := storage.LoadCollection(s.collectionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read collection: %w", err)
	}
	return entries, warning, nil
}

// Get returns the entry with the given id, or ErrNotFound
func (s *EntryService) Get(id string) (*entry.Entry, *storage.Warning, error) {
	entries, warning, err := storage.LoadCollection(s.collectionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read collection: %w", err)
	}

	for i := range entries {
		if entries[i].ID == id {
			return &entries[i], warning, nil
		}
	}
	return nil, warning, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Resolve finds the single entry whose id starts with prefix. CLI commands
// accept id prefixes the way short commit hashes work; an ambiguous or
// unknown prefix is ErrNotFound.
func (s *EntryService) Resolve(prefix string) (*entry.Entry, *storage.Warning, error) {
	if prefix == "" {
		return nil, nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	entries, warning, err := storage.LoadCollection(s.collectionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read collection: %w", err)
	}

	var match *entry.Entry
	for i := range entries {
		if strings.HasPrefix(entries[i].ID, prefix) {
			if match != nil {
				return nil, warning, fmt.Errorf("%w: id prefix %q is ambiguous", ErrNotFound, prefix)
			}
			match = &entries[i]
		}
	}
	if match == nil {
		return nil, warning, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	}
	return match, warning, nil
}
