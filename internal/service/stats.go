package service

import (
	"github.com/embli/daytrack/internal/stats"
	"github.com/embli/daytrack/internal/storage"
)

// StatsService computes aggregate statistics for one user's collection
type StatsService struct {
	entries *EntryService
}

// NewStatsService creates a StatsService over the given entry service
func NewStatsService(entries *EntryService) *StatsService {
	return &StatsService{entries: entries}
}

// Summary loads the collection and tallies it
func (s *StatsService) Summary() (stats.Summary, *storage.Warning, error) {
	entries, warning, err := s.entries.List()
	if err != nil {
		return stats.Summary{}, nil, err
	}
	return stats.Calculate(entries), warning, nil
}
