// Package config loads the optional TOML settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xolan/timelog/internal/osutil"
	"github.com/xolan/timelog/internal/timeutil"
)

// ConfigFile is the name of the TOML configuration file
const ConfigFile = "config.toml"

// Config represents the application configuration
type Config struct {
	// TimelogFile is the path of the log file. Empty means <app dir>/timelog.txt.
	TimelogFile string `toml:"timelog_file"`
	// VirtualMidnight is the HH:MM time at which a logical day ends
	VirtualMidnight string `toml:"virtual_midnight"`
	// Hours is the daily work target used to compute time left
	Hours float64 `toml:"hours"`
	// Timezone is an IANA timezone name or "Local"
	Timezone string `toml:"timezone"`

	// Name, Sender and Recipient fill the email report headers
	Name         string `toml:"name"`
	Sender       string `toml:"sender"`
	Recipient    string `toml:"recipient"`
	EmailHeaders bool   `toml:"email_headers"`

	// Theme is a bubbletint theme id used by the TUI
	Theme string `toml:"theme"`
	// HistorySize caps the number of remembered entry texts for autocomplete
	HistorySize int `toml:"history_size"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns a Config with the defaults used when no file exists.
func DefaultConfig() Config {
	return Config{
		VirtualMidnight: "02:00",
		Hours:           8,
		Timezone:        "Local",
		Theme:           "dracula",
		HistorySize:     500,
		LogLevel:        "warn",
	}
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// ConfigError reports an invalid setting or an unreadable config file.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return e.Err.Error()
	}
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// GetConfigPath returns the path to the config file in the app directory.
// Creates the directory if it doesn't exist.
func GetConfigPath() (string, error) {
	dir, err := osutil.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Load reads the config file at path. Keys missing from the file keep their
// defaults. Unknown keys are rejected so typos don't go unnoticed.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, &ConfigError{Err: fmt.Errorf("failed to parse config file %s: %w", path, err)}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, &ConfigError{Key: undecoded[0].String(), Err: errors.New("unknown setting")}
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns DefaultConfig if the file doesn't exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Normalize trims whitespace and lowercases case-insensitive values.
func (c *Config) Normalize() {
	c.TimelogFile = strings.TrimSpace(c.TimelogFile)
	c.VirtualMidnight = strings.TrimSpace(c.VirtualMidnight)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.Name = strings.TrimSpace(c.Name)
	c.Sender = strings.TrimSpace(c.Sender)
	c.Recipient = strings.TrimSpace(c.Recipient)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks every setting and returns the first *ConfigError found.
func (c Config) Validate() error {
	if _, err := c.Midnight(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Hours < 0 || c.Hours > 24 {
		return &ConfigError{Key: "hours", Value: fmt.Sprint(c.Hours), Err: errors.New("must be between 0 and 24")}
	}
	if c.HistorySize < 0 {
		return &ConfigError{Key: "history_size", Value: fmt.Sprint(c.HistorySize), Err: errors.New("cannot be negative")}
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Midnight parses the virtual_midnight setting.
func (c Config) Midnight() (timeutil.VirtualMidnight, error) {
	vm, err := timeutil.ParseVirtualMidnight(c.VirtualMidnight)
	if err != nil {
		return vm, &ConfigError{Key: "virtual_midnight", Value: c.VirtualMidnight, Err: err}
	}
	return vm, nil
}

// Location resolves the timezone setting. Empty and "Local" mean time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &ConfigError{Key: "timezone", Value: c.Timezone, Err: err}
	}
	return loc, nil
}

// Level returns the log_level setting, defaulting to warn when empty.
func (c Config) Level() (string, error) {
	if c.LogLevel == "" {
		return "warn", nil
	}
	for _, level := range validLogLevels {
		if c.LogLevel == level {
			return level, nil
		}
	}
	return "", &ConfigError{
		Key:   "log_level",
		Value: c.LogLevel,
		Err:   fmt.Errorf("must be one of %s", strings.Join(validLogLevels, ", ")),
	}
}

// DailyTarget returns the hours setting as a duration.
func (c Config) DailyTarget() time.Duration {
	return time.Duration(c.Hours * float64(time.Hour))
}

// ResolveTimelogFile returns the log file path, expanding a leading "~/" and
// falling back to defaultPath when timelog_file is unset.
func (c Config) ResolveTimelogFile(defaultPath string) (string, error) {
	if c.TimelogFile == "" {
		return defaultPath, nil
	}
	if rest, ok := strings.CutPrefix(c.TimelogFile, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", &ConfigError{Key: "timelog_file", Value: c.TimelogFile, Err: err}
		}
		return filepath.Join(home, rest), nil
	}
	return c.TimelogFile, nil
}

// GenerateSampleConfig returns a commented config file with every setting at
// its default value.
func GenerateSampleConfig() string {
	d := DefaultConfig()
	return fmt.Sprintf(`# timelog configuration file

# Path of the time log. Defaults to timelog.txt next to this file.
# timelog_file = "~/timelog.txt"

# Time at which one day ends and the next begins (HH:MM).
# Work logged after midnight but before this time counts toward the previous day.
virtual_midnight = %q

# Daily work target in hours, used for "Time left" in the TUI.
hours = %.1f

# Timezone: IANA timezone name (e.g., "Europe/Vilnius") or "Local"
timezone = %q

# Email report headers (timelog report --email-headers)
# name = "Your Name"
# sender = "you@example.com"
# recipient = "activity@example.com"
email_headers = false

# TUI color theme (see 'timelog tui --list-themes')
theme = %q

# Number of previous entry texts remembered for autocomplete
history_size = %d

# Log level: debug, info, warn, error
log_level = %q
`, d.VirtualMidnight, d.Hours, d.Timezone, d.Theme, d.HistorySize, d.LogLevel)
}
