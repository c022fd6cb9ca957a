// Package timelog reconstructs work intervals from the time log.
//
// A TimeLog owns the ordered entries of one log file and hands out Windows:
// immutable views over a time range that rebuild Items (the intervals between
// consecutive punches) and their work/slacking totals on demand.
package timelog

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/storage"
	"github.com/xolan/timelog/internal/timeutil"
)

// TimeLog is the in-memory copy of a time log file.
// It is not safe for concurrent use; callers serialise access.
type TimeLog struct {
	path    string
	vm      timeutil.VirtualMidnight
	loc     *time.Location
	now     func() time.Time
	logger  *slog.Logger
	records []storage.Record
	state   storage.FileState

	// trailingBreak is a blank line after the last entry on disk
	trailingBreak bool
}

// Option configures a TimeLog.
type Option func(*TimeLog)

// WithLogger sets the logger used for load, append and reload events.
func WithLogger(l *slog.Logger) Option {
	return func(tl *TimeLog) {
		tl.logger = l
	}
}

// WithLocation sets the timezone log timestamps are interpreted in.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(tl *TimeLog) {
		tl.loc = loc
	}
}

// WithClock replaces time.Now as the source of default append timestamps.
func WithClock(now func() time.Time) Option {
	return func(tl *TimeLog) {
		tl.now = now
	}
}

// Load reads the log file at path. A missing file yields an empty log.
// Any malformed line fails the whole load with a *storage.ParseError.
func Load(path string, vm timeutil.VirtualMidnight, opts ...Option) (*TimeLog, error) {
	if path == "" {
		return nil, &config.ConfigError{Key: "timelog_file", Err: fmt.Errorf("path cannot be empty")}
	}
	if err := vm.Validate(); err != nil {
		return nil, &config.ConfigError{Key: "virtual_midnight", Value: vm.String(), Err: err}
	}

	tl := &TimeLog{
		path:   path,
		vm:     vm,
		loc:    time.Local,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(tl)
	}

	if err := tl.Reload(); err != nil {
		return nil, err
	}
	return tl, nil
}

// Path returns the path of the backing log file.
func (tl *TimeLog) Path() string {
	return tl.path
}

// VirtualMidnight returns the logical day boundary of this log.
func (tl *TimeLog) VirtualMidnight() timeutil.VirtualMidnight {
	return tl.vm
}

// Location returns the timezone log timestamps are interpreted in.
func (tl *TimeLog) Location() *time.Location {
	return tl.loc
}

// Now returns the current time in the log's timezone.
func (tl *TimeLog) Now() time.Time {
	return tl.now().In(tl.loc)
}

// Len returns the number of entries in the log.
func (tl *TimeLog) Len() int {
	return len(tl.records)
}

// Entries returns a copy of all entries in file order.
func (tl *TimeLog) Entries() []entry.Entry {
	entries := make([]entry.Entry, len(tl.records))
	for i, r := range tl.records {
		entries[i] = r.Entry
	}
	return entries
}

// LastEntry returns the most recent entry, or false if the log is empty.
func (tl *TimeLog) LastEntry() (entry.Entry, bool) {
	if len(tl.records) == 0 {
		return entry.Entry{}, false
	}
	return tl.records[len(tl.records)-1].Entry, true
}

// Append records a new entry at the given time, or now if at is zero.
// The timestamp is truncated to the minute, the precision of the file format.
//
// The line is written and synced to disk before the entry becomes visible in
// memory, so a failed append leaves the log unchanged and can be retried.
// Blank text and timestamps earlier than the last entry are rejected with a
// *ValidationError. A break marker is written when the entry starts a new
// logical day. A blank line already ending the file is kept as the break
// before the new entry.
func (tl *TimeLog) Append(text string, at time.Time) (entry.Entry, error) {
	text, err := entry.NormalizeText(text)
	if err != nil {
		return entry.Entry{}, &ValidationError{Reason: err.Error()}
	}

	if _, err := tl.CheckReload(); err != nil {
		return entry.Entry{}, err
	}

	if at.IsZero() {
		at = tl.now()
	}
	at = at.In(tl.loc)
	at = time.Date(at.Year(), at.Month(), at.Day(), at.Hour(), at.Minute(), 0, 0, tl.loc)

	last, hasLast := tl.LastEntry()
	if hasLast && at.Before(last.Time) {
		return entry.Entry{}, &ValidationError{Reason: fmt.Sprintf(
			"timestamp %s is earlier than the last entry (%s)",
			at.Format(entry.TimestampLayout), last.Time.Format(entry.TimestampLayout))}
	}
	breakBefore := tl.trailingBreak || (hasLast && timeutil.DifferentDays(last.Time, at, tl.vm))

	e := entry.Entry{Time: at, Text: text}
	if err := storage.AppendEntry(tl.path, e, breakBefore && !tl.trailingBreak); err != nil {
		tl.logger.Error("failed to append entry", "path", tl.path, "error", err)
		return entry.Entry{}, err
	}

	tl.records = append(tl.records, storage.Record{Entry: e, BreakBefore: breakBefore})
	tl.trailingBreak = false
	if state, err := storage.Stat(tl.path); err == nil {
		tl.state = state
	}

	tl.logger.Debug("appended entry", "path", tl.path, "time", at, "break", breakBefore)
	return e, nil
}

// Reload re-reads the log file. On failure the current entries are kept.
func (tl *TimeLog) Reload() error {
	state, err := storage.Stat(tl.path)
	if err != nil {
		return err
	}

	contents, err := storage.ReadLog(tl.path, tl.loc)
	if err != nil {
		tl.logger.Warn("failed to load time log", "path", tl.path, "error", err)
		return err
	}

	tl.records = contents.Records
	tl.trailingBreak = contents.TrailingBreak
	tl.state = state
	tl.logger.Debug("loaded time log", "path", tl.path, "entries", len(tl.records))
	return nil
}

// CheckReload reloads the log if the file changed on disk since it was last
// read or written. Reports whether a reload happened.
func (tl *TimeLog) CheckReload() (bool, error) {
	state, err := storage.Stat(tl.path)
	if err != nil {
		return false, err
	}
	if state.Same(tl.state) {
		return false, nil
	}
	if err := tl.Reload(); err != nil {
		return false, err
	}
	return true, nil
}

// Window returns a view over the half-open range [start, end).
// Locating the range costs O(log n); the window itself holds only the entries
// in range plus the one preceding start, which seeds the first Item.
func (tl *TimeLog) Window(start, end time.Time) *Window {
	records := tl.records
	lo := sort.Search(len(records), func(i int) bool {
		return !records[i].Entry.Time.Before(start)
	})
	hi := sort.Search(len(records), func(i int) bool {
		return !records[i].Entry.Time.Before(end)
	})
	if hi < lo {
		hi = lo
	}

	from := lo
	if lo > 0 {
		from = lo - 1
	}

	return &Window{
		start:   start,
		end:     end,
		vm:      tl.vm,
		records: records[from:hi:hi],
		seeded:  from < lo,
	}
}

// WindowForDay returns the window of the logical day of date:
// [date at virtual midnight, date+1 at virtual midnight).
func (tl *TimeLog) WindowForDay(date time.Time) *Window {
	start, end := timeutil.DayRange(date.In(tl.loc), tl.vm)
	return tl.Window(start, end)
}

// WindowForWeek returns the window of the Monday-anchored logical week
// containing date.
func (tl *TimeLog) WindowForWeek(date time.Time) *Window {
	start, end := timeutil.WeekRange(date.In(tl.loc), tl.vm)
	return tl.Window(start, end)
}
