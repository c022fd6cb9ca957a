// Package report aggregates the items of a time window into categorized
// work totals and renders them as plain text, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/timelog"
)

// UncategorizedLabel names the bucket of items without a category.
const UncategorizedLabel = "(none)"

// labelWidth is the display width of the label column in text reports.
const labelWidth = 62

// Categorizer extracts the category of an item text.
// ok is false when the text belongs to no category.
type Categorizer func(text string) (name string, ok bool)

// Options controls report rendering.
type Options struct {
	// EmailHeaders prepends To/Subject headers and a blank line to the report.
	EmailHeaders bool
	// Name of the person the report is about, used in the subject line.
	Name string
	// Sender adds a From header when set.
	Sender string
	// Recipient fills the To header.
	Recipient string
	// Categorize defaults to entry.Category.
	Categorize Categorizer
}

// Reports renders reports for a single window.
type Reports struct {
	window *timelog.Window
	opts   Options
}

// New creates Reports for the given window.
func New(w *timelog.Window, opts Options) *Reports {
	if opts.Categorize == nil {
		opts.Categorize = entry.Category
	}
	return &Reports{window: w, opts: opts}
}

// CategoryTotal is the summed work time of one category.
type CategoryTotal struct {
	Name          string
	Uncategorized bool
	Duration      time.Duration
}

// Label returns the name shown for the category in reports.
func (c CategoryTotal) Label() string {
	if c.Uncategorized {
		return UncategorizedLabel
	}
	return c.Name
}

// Categories sums non-slacking items per category. The result is sorted by
// name, case-insensitively, with the uncategorized bucket last.
func (r *Reports) Categories() []CategoryTotal {
	byName := make(map[string]time.Duration)
	var (
		uncategorized    time.Duration
		hasUncategorized bool
	)

	for item := range r.window.Items() {
		if item.Slacking {
			continue
		}
		name, ok := r.opts.Categorize(item.Text)
		if !ok {
			uncategorized += item.Duration
			hasUncategorized = true
			continue
		}
		byName[name] += item.Duration
	}

	totals := make([]CategoryTotal, 0, len(byName)+1)
	for name, d := range byName {
		totals = append(totals, CategoryTotal{Name: name, Duration: d})
	}
	slices.SortFunc(totals, func(a, b CategoryTotal) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	if hasUncategorized {
		totals = append(totals, CategoryTotal{Uncategorized: true, Duration: uncategorized})
	}
	return totals
}

// WeeklyReportCategorized writes the categorized report for the window under
// a weekly subject. header and footer are written verbatim when non-empty.
// Returns the first error of the underlying writer.
func (r *Reports) WeeklyReportCategorized(out io.Writer, header, footer string) error {
	_, week := r.window.Start().ISOWeek()
	subject := fmt.Sprintf("Weekly report for %s (week %02d)", r.who(), week)
	return r.categorizedReport(out, subject, "week", header, footer)
}

// DailyReportCategorized is WeeklyReportCategorized with a daily subject.
func (r *Reports) DailyReportCategorized(out io.Writer, header, footer string) error {
	start := r.window.Start()
	_, week := start.ISOWeek()
	subject := fmt.Sprintf("%s report for %s (%s, week %02d)",
		start.Format("2006-01-02"), r.who(), start.Format("Monday"), week)
	return r.categorizedReport(out, subject, "day", header, footer)
}

func (r *Reports) who() string {
	if r.opts.Name == "" {
		return "me"
	}
	return r.opts.Name
}

func (r *Reports) categorizedReport(out io.Writer, subject, period, header, footer string) error {
	ew := &errWriter{w: out}

	if r.opts.EmailHeaders {
		if r.opts.Sender != "" {
			ew.printf("From: %s\n", r.opts.Sender)
		}
		ew.printf("To: %s\n", r.opts.Recipient)
		ew.printf("Subject: %s\n", subject)
		ew.printf("\n")
	}
	if header != "" {
		ew.printf("%s\n", strings.TrimSuffix(header, "\n"))
	}

	work, slacking := r.window.Totals()

	ew.printf("By category:\n\n")
	for _, c := range r.Categories() {
		ew.line(c.Label(), c.Duration)
	}
	ew.printf("\n")
	ew.line(fmt.Sprintf("Total work done this %s:", period), work)
	ew.line(fmt.Sprintf("Total slacking this %s:", period), slacking)

	if footer != "" {
		ew.printf("\n%s\n", strings.TrimSuffix(footer, "\n"))
	}
	return ew.err
}

// errWriter remembers the first write error and skips all later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) line(label string, d time.Duration) {
	ew.printf("%s  %s\n", runewidth.FillRight(label, labelWidth), FormatDuration(d))
}
