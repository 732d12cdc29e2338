// Package storage persists user profiles and per-user entry collections
// as JSON blobs under the application data directory. One blob holds the
// list of user names, and each user owns exactly one collection blob.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/embli/daytrack/internal/entry"
	"github.com/embli/daytrack/internal/osutil"
)

const (
	// AppName is the application name used for the data directory
	AppName = "daytrack"
	// UsersFile is the name of the user-list blob
	UsersFile = "users.json"
	// CollectionPrefix prefixes each per-user collection blob
	CollectionPrefix = "entries-"
	// CorruptSuffix is appended to a corrupt blob when it is set aside
	CorruptSuffix = ".corrupt"
)

// ErrInvalidUserName is returned for user names that cannot be used as a
// storage key.
var ErrInvalidUserName = errors.New("invalid user name")

// Warning describes a stored blob that could not be decoded. The load
// still succeeds with an empty result, but callers must surface the
// warning so a corrupt store is never mistaken for a new one.
type Warning struct {
	Path  string // Path of the corrupt blob
	Aside string // Where the corrupt content was copied, if it was
	Err   string // Description of the decoding error
}

// DataDir returns the application data directory, creating it if needed.
// Uses os.UserConfigDir() for cross-platform XDG-compliant placement.
func DataDir() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return appDir, nil
}

// ValidUserName reports whether name can serve as a collection storage key.
// Names are embedded in file names, so path separators and dot-names are
// rejected.
func ValidUserName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	for _, r := range name {
		switch r {
		case '/', '\\', 0:
			return false
		}
	}
	return true
}

// CollectionPath returns the path of the collection blob for the given user
func CollectionPath(dataDir, user string) string {
	return filepath.Join(dataDir, CollectionPrefix+user+".json")
}

// UsersPath returns the path of the user-list blob
func UsersPath(dataDir string) string {
	return filepath.Join(dataDir, UsersFile)
}

// LoadCollection reads a user's entry collection blob.
// A missing file yields an empty collection. A blob that exists but fails
// to decode also yields an empty collection, plus a Warning; the corrupt
// content is copied aside first so a subsequent save cannot clobber the
// only remaining evidence.
func LoadCollection(path string) ([]entry.Entry, *Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entry.Entry{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read collection: %w", err)
	}

	var entries []entry.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		w := &Warning{Path: path, Err: err.Error()}
		asidePath := path + CorruptSuffix
		if writeErr := os.WriteFile(asidePath, data, 0644); writeErr == nil {
			w.Aside = asidePath
		}
		return []entry.Entry{}, w, nil
	}

	if entries == nil {
		entries = []entry.Entry{}
	}
	return entries, nil, nil
}

// SaveCollection writes a user's full entry collection blob.
// Uses an atomic write (temp file, then rename) so a failed save leaves
// the stored collection untouched.
func SaveCollection(path string, entries []entry.Entry) error {
	if entries == nil {
		entries = []entry.Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	return atomicWrite(path, data)
}

// DeleteCollection removes a user's collection blob, its aside copy, and
// all its backups. Missing files are not an error: the cascade from
// profile deletion must be idempotent.
func DeleteCollection(path string) error {
	paths := []string{path, path + CorruptSuffix}
	for i := 1; i <= MaxBackupCount; i++ {
		paths = append(paths, BackupPath(path, i))
	}

	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", p, err)
		}
	}
	return nil
}

// LoadUsers reads the stored user-name list.
// Missing and corrupt blobs are handled the same way as LoadCollection.
func LoadUsers(path string) ([]string, *Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read user list: %w", err)
	}

	var users []string
	if err := json.Unmarshal(data, &users); err != nil {
		w := &Warning{Path: path, Err: err.Error()}
		asidePath := path + CorruptSuffix
		if writeErr := os.WriteFile(asidePath, data, 0644); writeErr == nil {
			w.Aside = asidePath
		}
		return []string{}, w, nil
	}

	if users == nil {
		users = []string{}
	}
	return users, nil, nil
}

// SaveUsers writes the full user-name list blob atomically
func SaveUsers(path string, users []string) error {
	if users == nil {
		users = []string{}
	}

	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user list: %w", err)
	}

	return atomicWrite(path, data)
}

// atomicWrite writes data to path via a temp file and rename
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
