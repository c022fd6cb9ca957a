package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/filter"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/storage"
	"github.com/xolan/timelog/internal/timelog"
	"github.com/xolan/timelog/internal/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "timelog",
	Short: "A plain-text time log",
	Long: `timelog keeps a log of what you did in a plain text file.

Every line of the log is a timestamp followed by what you just finished:

  2024-01-01 09:00: arrive
  2024-01-01 10:00: project-a: design
  2024-01-01 10:30: **coffee

Each entry closes an item that started at the previous entry. Text before the
first ':' is the item's category. Items containing '**' count as slacking and
are left out of work totals. A day ends at the virtual midnight (02:00 by
default), so work after midnight still counts toward the previous day.

Usage:
  timelog                          List today's items
  timelog add <text>               Log that you just finished <text>
  timelog day [date]               List the items of a day
  timelog week [date]              List the items of a week
  timelog last                     Show the most recent entry
  timelog status                   Show work done and time left today
  timelog report [--day date]      Print the categorized weekly report
  timelog validate                 Check the time log file
  timelog config                   Show the configuration
  timelog tui                      Launch the interactive terminal UI`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listToday(cmd)
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the time log file",
	Long: `Parse the whole time log and report on its health. Malformed and
out-of-order lines are reported with their line number.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		validateStorage(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	rootCmd.PersistentFlags().StringP("file", "f", "", "Path of the time log file (overrides timelog_file)")
	rootCmd.PersistentFlags().String("virtual-midnight", "", "Time at which a day ends, HH:MM (overrides virtual_midnight)")
	rootCmd.PersistentFlags().String("config", "", "Path of the config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides log_level)")
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", completeLogLevels)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"timelog version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// settings is the resolved configuration of one command invocation
type settings struct {
	cfg        config.Config
	configPath string
	path       string
	midnight   timeutil.VirtualMidnight
	loc        *time.Location
	logger     *slog.Logger
}

// loadSettings loads the config file and applies the persistent flags.
// Errors are reported on stderr and ok is false.
func loadSettings(cmd *cobra.Command, logOut io.Writer) (s *settings, ok bool) {
	flags := cmd.Root().PersistentFlags()

	configPath, _ := flags.GetString("config")
	if configPath == "" {
		var err error
		configPath, err = deps.ConfigPath()
		if err != nil {
			handleConfigPathError(err)
			return nil, false
		}
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		handleConfigError(configPath, err)
		return nil, false
	}
	if vm, _ := flags.GetString("virtual-midnight"); vm != "" {
		cfg.VirtualMidnight = vm
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		handleConfigError(configPath, err)
		return nil, false
	}

	// Validate guarantees these succeed
	midnight, _ := cfg.Midnight()
	loc, _ := cfg.Location()
	level, _ := cfg.Level()

	path, _ := flags.GetString("file")
	if path == "" {
		defaultPath, err := deps.StoragePath()
		if err != nil {
			handleStoragePathError(err)
			return nil, false
		}
		path, err = cfg.ResolveTimelogFile(defaultPath)
		if err != nil {
			handleConfigError(configPath, err)
			return nil, false
		}
	}

	return &settings{
		cfg:        cfg,
		configPath: configPath,
		path:       path,
		midnight:   midnight,
		loc:        loc,
		logger:     newLogger(logOut, level),
	}, true
}

// openServices loads the time log and wires the services around it.
func openServices(cmd *cobra.Command, logOut io.Writer) (*settings, *service.Services, bool) {
	s, ok := loadSettings(cmd, logOut)
	if !ok {
		return nil, nil, false
	}

	tl, err := timelog.Load(s.path, s.midnight,
		timelog.WithLogger(s.logger),
		timelog.WithLocation(s.loc),
		timelog.WithClock(deps.Now))
	if err != nil {
		handleLoadError(s.path, err)
		return nil, nil, false
	}

	return s, service.NewServices(tl, s.configPath, s.cfg, s.logger), true
}

// newLogger creates a text logger writing records at or above level to w.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// listToday lists the items of the current logical day
func listToday(cmd *cobra.Command) {
	_, services, ok := openServices(cmd, deps.Stderr)
	if !ok {
		return
	}
	writeDayView(services.Log.Day(services.Log.Today()), nil)
}

// writeDayView prints the items of a day view grouped by day.
// A nil filter prints every item.
func writeDayView(view service.DayView, f *filter.Filter) {
	days := filter.FilterDays(view.Days, f)
	if len(days) == 0 {
		if f.IsEmpty() {
			_, _ = fmt.Fprintf(deps.Stdout, "Nothing logged on %s\n", cli.FormatDayHeader(view.Date))
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "No matching items on %s\n", cli.FormatDayHeader(view.Date))
		}
		return
	}
	if err := cli.WriteDays(deps.Stdout, days, deps.TerminalWidth()); err != nil {
		handleWriteError(err)
	}
}

// validateStorage checks the time log file and reports its health
func validateStorage(cmd *cobra.Command) {
	s, ok := loadSettings(cmd, deps.Stderr)
	if !ok {
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Time log: %s\n", s.path)
	_, _ = fmt.Fprintln(deps.Stdout, "===================================")

	health, err := storage.ValidateStorage(s.path, s.loc)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: ✗ Invalid")
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatParseError(err))
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Every line must be empty or 'YYYY-MM-DD HH:MM: text', in chronological order")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Total lines: %d\n", health.TotalLines)
	_, _ = fmt.Fprintf(deps.Stdout, "Entries:     %d\n", health.Entries)
	_, _ = fmt.Fprintf(deps.Stdout, "Day breaks:  %d\n", health.Breaks)
	if health.Entries > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "First entry: %s\n", health.First.Format("2006-01-02 15:04"))
		_, _ = fmt.Fprintf(deps.Stdout, "Last entry:  %s\n", health.Last.Format("2006-01-02 15:04"))
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, "Status: ✓ Healthy")
}
