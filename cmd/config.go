package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for daytrack.

Shows the configuration file location, whether it exists, and all current
settings. Configuration values are merged from the config file with
sensible defaults.

By default, daytrack works without any configuration file. All settings
have defaults:
  - default_user: (empty, resolved from --user or the only profile)
  - theme: (empty, uses the built-in theme)
  - date_format: long

Examples:

  Display current configuration:
    daytrack config

  Create a config file with documented defaults:
    daytrack config init

  Change a setting:
    daytrack config set default_user alice
    daytrack config set date_format short`,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with documented defaults",
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

// configSetCmd represents the config set command
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration setting",
	Long: `Change one configuration setting and write it to the config file.

Known keys:
  default_user   Profile used when no --user flag is given
  theme          TUI color theme name
  date_format    Date header rendering: long or short`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setConfig(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
}

// showConfig displays the current effective configuration
func showConfig() {
	svcs := openServices()
	if svcs == nil {
		return
	}

	configPath := svcs.Config.GetPath()
	fileExists := svcs.Config.Exists()
	cfg := svcs.Config.Get()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for daytrack")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", configPath)
	if fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))

	if cfg.DefaultUser == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Default User:    (none)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Default User:    %s\n", cfg.DefaultUser)
	}
	if cfg.Theme == "" {
		_, _ = fmt.Fprintln(deps.Stdout, "Theme:           (default)")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s\n", cfg.Theme)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Date Format:     %s\n", cfg.DateFormat)
	_, _ = fmt.Fprintln(deps.Stdout)

	if !fileExists {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Create a config file with 'daytrack config init'.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig creates a config file with documented defaults
func initConfig() {
	svcs := openServices()
	if svcs == nil {
		return
	}

	if svcs.Config.Exists() {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Config file already exists: %s\n", svcs.Config.GetPath())
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Edit it directly, or change settings with 'daytrack config set'")
		deps.Exit(1)
		return
	}

	if err := svcs.Config.Init(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to create config file: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", svcs.Config.GetPath())
}

// setConfig changes one configuration key and persists the result
func setConfig(key, value string) {
	svcs := openServices()
	if svcs == nil {
		return
	}

	cfg := svcs.Config.Get()

	switch key {
	case "default_user":
		cfg.DefaultUser = value
	case "theme":
		cfg.Theme = value
	case "date_format":
		cfg.DateFormat = value
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown config key %q\n", key)
		_, _ = fmt.Fprintln(deps.Stderr, "Known keys: default_user, theme, date_format")
		deps.Exit(1)
		return
	}

	if err := svcs.Config.Update(cfg); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to update configuration: %v\n", err)
		if key == "date_format" {
			_, _ = fmt.Fprintln(deps.Stderr, "Valid date_format values: long, short")
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Set %s = %s\n", key, value)
}
