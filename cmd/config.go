package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/service"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for timelog.

Shows the configuration file location, whether it exists, and all current
settings after the command line overrides are applied.

timelog works without any configuration file. All settings have defaults:
  - virtual_midnight: 02:00
  - hours: 8
  - timezone: Local (system timezone)

Examples:

  Display current configuration:
    timelog config                   Show all current settings

  Create a commented config file with the defaults:
    timelog config --init

Configuration file location:
  ~/.config/timelog/config.toml      Linux
  $TIMELOG_HOME/config.toml          When TIMELOG_HOME is set`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if initFlag, _ := cmd.Flags().GetBool("init"); initFlag {
			initConfig(cmd)
			return
		}
		showConfig(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("init", false, "Write a sample config file with the default settings")
}

// showConfig displays the current effective configuration
func showConfig(cmd *cobra.Command) {
	s, ok := loadSettings(cmd, deps.Stderr)
	if !ok {
		return
	}
	configs := service.NewConfigService(s.configPath, s.cfg)

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for timelog")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:      %s\n", s.configPath)
	if configs.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:           File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:           No config file (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Time log:         %s\n", s.path)
	_, _ = fmt.Fprintf(deps.Stdout, "Virtual midnight: %s\n", s.midnight)
	_, _ = fmt.Fprintf(deps.Stdout, "Hours:            %g\n", s.cfg.Hours)
	_, _ = fmt.Fprintf(deps.Stdout, "Timezone:         %s\n", s.cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "Name:             %s\n", orDefault(s.cfg.Name, "me"))
	_, _ = fmt.Fprintf(deps.Stdout, "Sender:           %s\n", orDefault(s.cfg.Sender, "(none)"))
	_, _ = fmt.Fprintf(deps.Stdout, "Recipient:        %s\n", orDefault(s.cfg.Recipient, "(none)"))
	_, _ = fmt.Fprintf(deps.Stdout, "Email headers:    %t\n", s.cfg.EmailHeaders)
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:            %s\n", s.cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "History size:     %d\n", s.cfg.HistorySize)
	_, _ = fmt.Fprintf(deps.Stdout, "Log level:        %s\n", orDefault(s.cfg.LogLevel, "warn"))
	_, _ = fmt.Fprintln(deps.Stdout)

	if !configs.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'timelog config --init' to create a config file with these defaults.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
}

// initConfig writes the sample config file
func initConfig(cmd *cobra.Command) {
	s, ok := loadSettings(cmd, deps.Stderr)
	if !ok {
		return
	}

	configs := service.NewConfigService(s.configPath, s.cfg)
	if err := configs.Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", s.configPath)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
