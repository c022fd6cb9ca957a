package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/report"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/timeutil"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the categorized weekly report",
	Long: `Print the work of the week (Monday to Sunday) containing the given day,
totalled per category. Slacking items are left out. Items without a category
are listed under (none).

With --email-headers the report starts with To and Subject headers so it can
be piped straight into sendmail. The subject carries the ISO week number.

Examples:
  timelog report                          This week's report
  timelog report --day 2024-01-03         Report for the week of January 3
  timelog report --daily                  Today's report
  timelog report --format json            Machine-readable totals
  timelog report --email-headers | sendmail -t`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runReport(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("day", "", "Report the week containing this date, YYYY-MM-DD (default today)")
	reportCmd.Flags().Bool("daily", false, "Report a single day instead of a week")
	reportCmd.Flags().Bool("email-headers", false, "Prepend To/Subject headers (overrides email_headers)")
	reportCmd.Flags().String("header", "", "Text printed before the categories")
	reportCmd.Flags().String("footer", "", "Text printed after the totals")
	reportCmd.Flags().String("format", "text", "Output format: text, json or yaml")
	_ = reportCmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// runReport handles the report command logic
func runReport(cmd *cobra.Command, args []string) {
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid --format value")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	s, services, ok := openServices(cmd, deps.Stderr)
	if !ok {
		return
	}

	date := services.Log.Today()
	if day, _ := cmd.Flags().GetString("day"); day != "" {
		date, err = timeutil.ParseDateInLocation(day, s.loc)
		if err != nil {
			handleDateError(err)
			return
		}
	}

	period := service.PeriodWeek
	if daily, _ := cmd.Flags().GetBool("daily"); daily {
		period = service.PeriodDay
	}

	opts := services.Report.Options()
	if cmd.Flags().Changed("email-headers") {
		opts.EmailHeaders, _ = cmd.Flags().GetBool("email-headers")
	}
	header, _ := cmd.Flags().GetString("header")
	footer, _ := cmd.Flags().GetString("footer")

	if err := services.Report.Write(deps.Stdout, date, period, format, opts, header, footer); err != nil {
		handleWriteError(err)
	}
}
