package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/embli/daytrack/internal/osutil"
)

const (
	// AppName is the application name used for the config directory
	AppName = "daytrack"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Config represents the application configuration
type Config struct {
	// DefaultUser is the profile used when no --user flag is given
	DefaultUser string `toml:"default_user"`
	// Theme is the TUI color theme name
	Theme string `toml:"theme"`
	// DateFormat selects how entry dates are rendered in CLI output
	// ("long" for weekday + month name, "short" for YYYY-MM-DD)
	DateFormat string `toml:"date_format"`
}

// DefaultConfig returns a Config with the defaults used when no config
// file exists: no default user, the default theme, long date headers.
func DefaultConfig() Config {
	return Config{
		DefaultUser: "",
		Theme:       "",
		DateFormat:  "long",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// LoadOrDefault loads the config file at path, falling back to defaults
// when the file does not exist. Fields absent from the file keep their
// default values. A file that exists but fails to parse is an error.
func LoadOrDefault(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return cfg, nil
}

// Normalize canonicalizes config values in place
func (c *Config) Normalize() {
	c.DateFormat = strings.ToLower(strings.TrimSpace(c.DateFormat))
	if c.DateFormat == "" {
		c.DateFormat = "long"
	}
	c.Theme = strings.TrimSpace(c.Theme)
	c.DefaultUser = strings.TrimSpace(c.DefaultUser)
}

// Validate checks config values after normalization
func (c Config) Validate() error {
	switch c.DateFormat {
	case "long", "short":
	default:
		return fmt.Errorf("invalid date_format %q: must be \"long\" or \"short\"", c.DateFormat)
	}
	return nil
}

// GenerateSampleConfig returns a commented sample config file
func GenerateSampleConfig() string {
	return `# daytrack configuration file

# Profile used when no --user flag is given
default_user = ""

# TUI color theme (see the Config tab in the TUI for available themes)
theme = ""

# Date header style in CLI output: "long" or "short"
date_format = "long"
`
}
