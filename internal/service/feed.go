package service

import (
	"github.com/embli/daytrack/internal/feed"
	"github.com/embli/daytrack/internal/storage"
	"github.com/embli/daytrack/internal/timeutil"
)

// FeedService derives the display-ready feed for one user's collection
type FeedService struct {
	entries *EntryService
}

// NewFeedService creates a FeedService over the given entry service
func NewFeedService(entries *EntryService) *FeedService {
	return &FeedService{entries: entries}
}

// View loads the collection and builds the sorted, date-grouped feed
// relative to refDate. An empty refDate means the current calendar date.
func (s *FeedService) View(refDate string) ([]feed.Item, *storage.Warning, error) {
	if refDate == "" {
		refDate = timeutil.Today()
	}

	entries, warning, err := s.entries.List()
	if err != nil {
		return nil, nil, err
	}

	return feed.Build(entries, refDate), warning, nil
}
