package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/cli"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show work done and time left today",
	Long: `Show the work done today and this week, and how much of the daily
target (the 'hours' setting) is left.

Examples:
  timelog status`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showStatus(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// showStatus prints today's progress toward the daily target
func showStatus(cmd *cobra.Command) {
	_, services, ok := openServices(cmd, deps.Stderr)
	if !ok {
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatStatus(services.Log.Status()))
}
