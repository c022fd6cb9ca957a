package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/report"
)

// lastCmd represents the last command
var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the most recent entry",
	Long: `Show the most recent entry of the time log and how long ago it was
logged.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showLastEntry(cmd)
	},
}

func init() {
	rootCmd.AddCommand(lastCmd)
}

// showLastEntry prints the most recent entry
func showLastEntry(cmd *cobra.Command) {
	_, services, ok := openServices(cmd, deps.Stderr)
	if !ok {
		return
	}

	e, found := services.Log.Last()
	if !found {
		_, _ = fmt.Fprintln(deps.Stdout, "The time log is empty")
		_, _ = fmt.Fprintln(deps.Stdout, "Start your day with: timelog add arrive")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEntry(e))
	if since := services.Log.Now().Sub(e.Time); since >= 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "%s ago\n", report.FormatDuration(since))
	}
}
