package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/tui"
	"github.com/xolan/timelog/internal/tui/ui"
	"github.com/xolan/timelog/internal/watch"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for timelog.

The TUI shows today's items, the work done and the time left, and lets you
log entries as you go. Changes made to the time log by other programs are
picked up automatically.

Views available:
  - Log: Today's items with an input line for new entries
  - Report: The categorized weekly or daily report
  - Config: The current settings and the color theme

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-3: Jump to specific view
  - n: Log a new entry (Tab completes previous entries)
  - ←/→: Previous/next day or week
  - ?: Show help
  - q: Quit (ctrl+q or ctrl+c while typing)`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI(cmd)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().String("log-file", "", "Write log records to this file (the terminal is taken by the UI)")
	tuiCmd.Flags().Bool("list-themes", false, "List the available color themes and exit")
}

// runTUI initializes and runs the TUI application
func runTUI(cmd *cobra.Command) {
	if list, _ := cmd.Flags().GetBool("list-themes"); list {
		for _, name := range ui.NewThemeProvider(ui.DefaultTheme).AvailableThemes() {
			_, _ = fmt.Fprintln(deps.Stdout, name)
		}
		return
	}

	if !deps.IsTerminal() {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: The TUI needs an interactive terminal")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'timelog add' and 'timelog report' in scripts")
		deps.Exit(1)
		return
	}

	var logOut io.Writer = io.Discard
	if logFile, _ := cmd.Flags().GetString("log-file"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open log file")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}

	s, services, ok := openServices(cmd, logOut)
	if !ok {
		return
	}

	// Without a watcher the TUI still refreshes on its periodic tick
	watcher, err := watch.NewFileWatcher(s.path, s.logger)
	if err != nil {
		s.logger.Warn("file watching disabled", "path", s.path, "error", err)
		watcher = nil
	} else {
		defer func() { _ = watcher.Close() }()
	}

	if err := tui.Run(services, watcher); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to run TUI")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
	}
}
