package cmd

import (
	"errors"
	"fmt"

	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/storage"
	"github.com/xolan/timelog/internal/timelog"
)

func handleConfigPathError(err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
	deps.Exit(1)
}

func handleStoragePathError(err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine time log location")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	_, _ = fmt.Fprintf(deps.Stderr, "Hint: Set timelog_file in the config file or pass --file\n")
	deps.Exit(1)
}

func handleConfigError(configPath string, err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	_, _ = fmt.Fprintln(deps.Stderr)

	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Key == "virtual_midnight" {
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: virtual_midnight uses the HH:MM format, e.g. 02:00")
	} else {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML format: %s\n", configPath)
	}
	deps.Exit(1)
}

func handleLoadError(path string, err error) {
	var parseErr *storage.ParseError
	if errors.As(err, &parseErr) {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Time log contains an invalid line")
		_, _ = fmt.Fprintf(deps.Stderr, "Details:\n%s\n", cli.FormatParseError(err))
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Fix the line in %s, then run 'timelog validate'\n", path)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read time log")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that %s is readable\n", path)
	deps.Exit(1)
}

func handleAppendError(err error) {
	var validationErr *timelog.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Entry not logged")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Entries must be non-empty and not earlier than the last entry")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save entry")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	deps.Exit(1)
}

func handleWriteError(err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write output")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	deps.Exit(1)
}

func handleDateError(err error) {
	_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid date")
	_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	deps.Exit(1)
}
