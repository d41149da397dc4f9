// Package config resolves session settings from an optional YAML file and
// CALCLI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries the settings a session bootstraps from: the calendar that
// exists before the first command runs, its timezone, and the interactive
// prompt.
type Config struct {
	// ConfigFile is the file settings were read from, empty when only
	// defaults and environment applied.
	ConfigFile string

	DefaultCalendar string
	DefaultTimezone string
	Prompt          string
}

// Load resolves configuration. Precedence: environment variables beat the
// config file, which beats built-in defaults. explicitFile, when non-empty,
// must exist and parse; the default XDG location is allowed to be absent.
func Load(explicitFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CALCLI")
	v.AutomaticEnv()

	_ = v.BindEnv("default_calendar", "CALCLI_DEFAULT_CALENDAR")
	_ = v.BindEnv("default_timezone", "CALCLI_DEFAULT_TIMEZONE")
	_ = v.BindEnv("prompt", "CALCLI_PROMPT")

	v.SetDefault("default_calendar", "default")
	v.SetDefault("default_timezone", defaultTimezone())
	v.SetDefault("prompt", "calcli> ")

	configFile := explicitFile
	if configFile == "" {
		configFile = xdgConfigFile()
	}

	read := ""
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		switch err := v.ReadInConfig(); {
		case err == nil:
			read = configFile
		case explicitFile == "" && errors.Is(err, fs.ErrNotExist):
			// No file at the default location; defaults apply.
		default:
			return Config{}, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		ConfigFile:      read,
		DefaultCalendar: strings.TrimSpace(v.GetString("default_calendar")),
		DefaultTimezone: strings.TrimSpace(v.GetString("default_timezone")),
		Prompt:          v.GetString("prompt"),
	}
	if cfg.DefaultCalendar == "" {
		return Config{}, fmt.Errorf("default_calendar must not be empty")
	}
	if cfg.DefaultTimezone == "" {
		return Config{}, fmt.Errorf("default_timezone must not be empty")
	}
	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		return Config{}, fmt.Errorf("default_timezone %q is not a recognized timezone", cfg.DefaultTimezone)
	}
	return cfg, nil
}

// defaultTimezone prefers the ambient TZ variable so a bare session lines
// up with the user's clock.
func defaultTimezone() string {
	if tz := strings.TrimSpace(os.Getenv("TZ")); tz != "" {
		return tz
	}
	return "Local"
}

func xdgConfigFile() string {
	dir := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "calcli", "config.yaml")
}
