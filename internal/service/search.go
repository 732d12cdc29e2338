package service

import (
	"strings"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/feed"
	"github.com/embli/daytrack/internal/storage"
)

// SearchService finds entries by free-text match over one user's collection
type SearchService struct {
	entries *EntryService
}

// NewSearchService creates a SearchService over the given entry service
func NewSearchService(entries *EntryService) *SearchService {
	return &SearchService{entries: entries}
}

// Search returns entries whose content, category, or emoji matches the
// query, case-insensitively, in feed order. An empty query matches nothing.
func (s *SearchService) Search(query string) ([]entry.Entry, *storage.Warning, error) {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return []entry.Entry{}, nil, nil
	}

	entries, warning, err := s.entries.List()
	if err != nil {
		return nil, nil, err
	}

	var matches []entry.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Content), query) ||
			strings.Contains(strings.ToLower(string(e.Category)), query) ||
			e.Emoji == query {
			matches = append(matches, e)
		}
	}

	return feed.Sorted(matches), warning, nil
}
