package service

import (
	"fmt"

	"github.com/embli/daytrack/internal/storage"
)

// UserService manages the list of user profiles. Deleting a profile
// cascades to that user's collection blob and its backups.
type UserService struct {
	dataDir string
}

// NewUserService creates a UserService over the given data directory
func NewUserService(dataDir string) *UserService {
	return &UserService{dataDir: dataDir}
}

// Users returns the stored profile names
func (s *UserService) Users() ([]string, *storage.Warning, error) {
	return storage.LoadUsers(storage.UsersPath(s.dataDir))
}

// Exists reports whether a profile with the given name is stored
func (s *UserService) Exists(name string) (bool, error) {
	users, _, err := s.Users()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u == name {
			return true, nil
		}
	}
	return false, nil
}

// Create adds a new profile. The collection blob itself is created lazily
// on the first saved entry.
func (s *UserService) Create(name string) error {
	if !storage.ValidUserName(name) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidUserName, name)
	}

	usersPath := storage.UsersPath(s.dataDir)
	users, _, err := storage.LoadUsers(usersPath)
	if err != nil {
		return err
	}

	for _, u := range users {
		if u == name {
			return fmt.Errorf("%w: %q", ErrUserExists, name)
		}
	}

	users = append(users, name)
	if err := storage.SaveUsers(usersPath, users); err != nil {
		return fmt.Errorf("failed to save user list: %w", err)
	}
	return nil
}

// Delete removes a profile and destroys its collection, including backups
func (s *UserService) Delete(name string) error {
	usersPath := storage.UsersPath(s.dataDir)
	users, _, err := storage.LoadUsers(usersPath)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(users))
	found := false
	for _, u := range users {
		if u == name {
			found = true
			continue
		}
		remaining = append(remaining, u)
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrUserNotFound, name)
	}

	if err := storage.SaveUsers(usersPath, remaining); err != nil {
		return fmt.Errorf("failed to save user list: %w", err)
	}

	// Cascade: the collection is owned by the profile
	if err := storage.DeleteCollection(storage.CollectionPath(s.dataDir, name)); err != nil {
		return fmt.Errorf("failed to delete collection for %q: %w", name, err)
	}
	return nil
}

// CollectionPath returns the path of the user's collection blob
func (s *UserService) CollectionPath(name string) string {
	return storage.CollectionPath(s.dataDir, name)
}
