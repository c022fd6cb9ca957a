// Package cli provides the CLI presentation layer for timelog.
// It handles command-line output formatting.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/report"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/storage"
	"github.com/xolan/timelog/internal/timelog"
)

// FormatItem formats an item as "H h MM min (HH:MM-HH:MM) text"
func FormatItem(item timelog.Item) string {
	return fmt.Sprintf("%s (%s-%s) %s",
		report.FormatDuration(item.Duration),
		item.Start.Format("15:04"),
		item.Stop.Format("15:04"),
		item.Text)
}

// FormatDayHeader formats a logical day as "Monday, 2024-01-01 (week 01)".
// The week is the ISO week, the same number the weekly report subject uses.
func FormatDayHeader(date time.Time) string {
	_, week := date.ISOWeek()
	return fmt.Sprintf("%s (week %02d)", date.Format("Monday, 2006-01-02"), week)
}

// FormatStatus formats progress toward the daily target as
// "Work done: X (Y this week), Time left: Z (till HH:MM)"
func FormatStatus(s service.Status) string {
	return fmt.Sprintf("Work done: %s (%s this week), Time left: %s (till %s)",
		report.FormatDuration(s.WorkToday),
		report.FormatDuration(s.WorkThisWeek),
		report.FormatDuration(s.TimeLeft),
		s.Till.Format("15:04"))
}

// FormatEntry formats an entry the way it appears in the log file
func FormatEntry(e entry.Entry) string {
	return entry.FormatLine(e)
}

// FormatDateRangeForDisplay formats a date range for human-readable display.
func FormatDateRangeForDisplay(start, end time.Time) string {
	if start.Format("2006-01-02") == end.Format("2006-01-02") {
		return start.Format("Mon, Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// Truncate shortens s to fit width display columns. A width <= 0 disables truncation.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// WriteDays lists the items of each day under a day header, followed by the
// day's totals. Days are separated by a blank line.
func WriteDays(w io.Writer, days []timelog.Day, width int) error {
	for i, day := range days {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, FormatDayHeader(day.Date)); err != nil {
			return err
		}
		for _, item := range day.Items {
			if _, err := fmt.Fprintln(w, Truncate(FormatItem(item), width)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Total work: %s, slacking: %s\n",
			report.FormatDuration(day.Work), report.FormatDuration(day.Slacking)); err != nil {
			return err
		}
	}
	return nil
}

// FormatParseError describes a malformed log line with its line number and
// truncated content (max 50 chars). Other errors are returned as is.
func FormatParseError(err error) string {
	var parseErr *storage.ParseError
	if !errors.As(err, &parseErr) {
		return err.Error()
	}
	content := parseErr.Content
	if len(content) > 50 {
		content = content[:47] + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %v)", parseErr.Line, content, parseErr.Err)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}
