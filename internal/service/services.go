package service

import (
	"fmt"

	"github.com/embli/daytrack/internal/config"
	"github.com/embli/daytrack/internal/storage"
)

// Services holds the service instances used by the application. Per-user
// services (entries, feed, search, stats) are created on demand once the
// active user is resolved.
type Services struct {
	DataDir string

	User   *UserService
	Config *ConfigService
}

// NewServices creates a Services instance with default paths
func NewServices() (*Services, error) {
	dataDir, err := storage.DataDir()
	if err != nil {
		return nil, err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(dataDir, configPath, cfg), nil
}

// NewServicesWithPaths creates a Services instance with custom paths
// (useful for testing)
func NewServicesWithPaths(dataDir, configPath string, cfg config.Config) *Services {
	return &Services{
		DataDir: dataDir,
		User:    NewUserService(dataDir),
		Config:  NewConfigService(configPath, cfg),
	}
}

// Entries returns the entry service for the given user
func (s *Services) Entries(user string) *EntryService {
	return NewEntryService(s.User.CollectionPath(user))
}

// Feed returns the feed service for the given user
func (s *Services) Feed(user string) *FeedService {
	return NewFeedService(s.Entries(user))
}

// Search returns the search service for the given user
func (s *Services) Search(user string) *SearchService {
	return NewSearchService(s.Entries(user))
}

// Stats returns the stats service for the given user
func (s *Services) Stats(user string) *StatsService {
	return NewStatsService(s.Entries(user))
}

// ResolveUser determines the active user: the explicit flag value if
// given, else the configured default_user, else the only stored profile
// when exactly one exists. The resolved user must be a stored profile.
func (s *Services) ResolveUser(flagUser string) (string, error) {
	candidate := flagUser
	if candidate == "" {
		candidate = s.Config.Get().DefaultUser
	}

	if candidate != "" {
		exists, err := s.User.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return "", fmt.Errorf("%w: %q", ErrUserNotFound, candidate)
		}
		return candidate, nil
	}

	users, _, err := s.User.Users()
	if err != nil {
		return "", err
	}
	if len(users) == 1 {
		return users[0], nil
	}
	return "", ErrNoActiveUser
}
