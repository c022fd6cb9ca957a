package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/timeutil"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Log that you just finished something",
	Long: `Append an entry to the time log. The entry closes an item that started
at the previous entry. Without arguments the text is read from stdin.

Start the day with 'arrive'. Prefix the text with a category and a colon to
have it grouped in reports, and mark breaks with '**'.

Examples:
  timelog add arrive
  timelog add project-a: design review
  timelog add '**coffee'
  timelog add --at 17:30 project-b: call`,
	Run: func(cmd *cobra.Command, args []string) {
		addEntry(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().String("at", "", "Timestamp of the entry, HH:MM or 'YYYY-MM-DD HH:MM' (default now)")
}

// addEntry appends the joined arguments to the time log
func addEntry(cmd *cobra.Command, args []string) {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		line, err := bufio.NewReader(deps.Stdin).ReadString('\n')
		if err != nil && line == "" {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: No entry text given")
			_, _ = fmt.Fprintln(deps.Stderr, "Usage: timelog add <text>")
			deps.Exit(1)
			return
		}
		text = line
	}
	text = strings.TrimSpace(text)

	_, services, ok := openServices(cmd, deps.Stderr)
	if !ok {
		return
	}

	var at time.Time
	if atFlag, _ := cmd.Flags().GetString("at"); atFlag != "" {
		var err error
		at, err = timeutil.ParseTimestamp(atFlag, services.Log.Now())
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid --at value")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			deps.Exit(1)
			return
		}
	}

	e, err := services.Log.Add(text, at)
	if err != nil {
		handleAppendError(err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s\n", cli.FormatEntry(e))
}
