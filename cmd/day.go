package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/filter"
	"github.com/xolan/timelog/internal/timeutil"
)

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "List the items of a day",
	Long: `List the items of a logical day with its work and slacking totals.
The date is YYYY-MM-DD or DD/MM/YYYY and defaults to today.

Examples:
  timelog day                          List today's items
  timelog day 2024-01-15               List the items of January 15, 2024
  timelog day --category project-a     Only items of one category
  timelog day --grep review --work     Work items mentioning "review"`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		listDay(cmd, args)
	},
}

// weekCmd represents the week command
var weekCmd = &cobra.Command{
	Use:   "week [date]",
	Short: "List the items of a week",
	Long: `List the items of the week (Monday to Sunday) containing the date,
one day at a time. The date defaults to today.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		listWeek(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(weekCmd)

	for _, c := range []*cobra.Command{dayCmd, weekCmd} {
		c.Flags().String("grep", "", "Only items whose text contains this keyword (case-insensitive)")
		c.Flags().String("category", "", "Only items of this category")
		c.Flags().Bool("work", false, "Leave out slacking items")
	}
}

// itemFilter builds the item filter from the --grep, --category and --work flags
func itemFilter(cmd *cobra.Command) *filter.Filter {
	keyword, _ := cmd.Flags().GetString("grep")
	category, _ := cmd.Flags().GetString("category")
	workOnly, _ := cmd.Flags().GetBool("work")
	return filter.NewFilter(keyword, category, workOnly)
}

// listDay lists the items of the day given as the optional argument
func listDay(cmd *cobra.Command, args []string) {
	s, services, ok := openServices(cmd, deps.Stderr)
	if !ok {
		return
	}

	date := services.Log.Today()
	if len(args) == 1 {
		var err error
		date, err = timeutil.ParseDateInLocation(args[0], s.loc)
		if err != nil {
			handleDateError(err)
			return
		}
	}

	writeDayView(services.Log.Day(date), itemFilter(cmd))
}

// listWeek lists the items of the week containing the optional argument
func listWeek(cmd *cobra.Command, args []string) {
	s, services, ok := openServices(cmd, deps.Stderr)
	if !ok {
		return
	}

	date := services.Log.Today()
	if len(args) == 1 {
		var err error
		date, err = timeutil.ParseDateInLocation(args[0], s.loc)
		if err != nil {
			handleDateError(err)
			return
		}
	}

	monday := timeutil.StartOfWeek(date)
	writeDayView(services.Log.Range(monday, monday.AddDate(0, 0, 6)), itemFilter(cmd))
}
