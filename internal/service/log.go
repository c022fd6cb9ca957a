package service

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/timelog"
	"github.com/xolan/timelog/internal/timeutil"
)

// LogService serialises access to the time log. The TUI runs commands in
// goroutines, so every call takes the lock.
type LogService struct {
	mu     sync.Mutex
	tl     *timelog.TimeLog
	target time.Duration
	logger *slog.Logger
}

// NewLogService creates a new LogService
func NewLogService(tl *timelog.TimeLog, target time.Duration, logger *slog.Logger) *LogService {
	return &LogService{
		tl:     tl,
		target: target,
		logger: logger,
	}
}

// Path returns the path of the log file
func (s *LogService) Path() string {
	return s.tl.Path()
}

// Now returns the current time in the log's timezone
func (s *LogService) Now() time.Time {
	return s.tl.Now()
}

// Today returns the logical day containing the current time
func (s *LogService) Today() time.Time {
	return timeutil.LogicalDay(s.tl.Now(), s.tl.VirtualMidnight())
}

// Add appends an entry. A zero at means now.
func (s *LogService) Add(text string, at time.Time) (entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tl.Append(text, at)
}

// Last returns the most recent entry
func (s *LogService) Last() (entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tl.LastEntry()
}

// Texts returns the distinct entry texts in the order they last appeared
func (s *LogService) Texts() []string {
	s.mu.Lock()
	entries := s.tl.Entries()
	s.mu.Unlock()

	seen := make(map[string]bool, len(entries))
	var texts []string
	for i := len(entries) - 1; i >= 0; i-- {
		text := entries[i].Text
		if seen[text] {
			continue
		}
		seen[text] = true
		texts = append(texts, text)
	}
	slices.Reverse(texts)
	return texts
}

// Day returns the items of the logical day of date
func (s *LogService) Day(date time.Time) DayView {
	w := s.WindowForDay(date)
	work, slacking := w.Totals()
	return DayView{
		Date:     timeutil.StartOfDay(date),
		Items:    slices.Collect(w.Items()),
		Work:     work,
		Slacking: slacking,
		Days:     w.Days(),
	}
}

// Range returns the items of the logical days from..to inclusive
func (s *LogService) Range(from, to time.Time) DayView {
	s.mu.Lock()
	vm := s.tl.VirtualMidnight()
	start, _ := timeutil.DayRange(from, vm)
	_, end := timeutil.DayRange(to, vm)
	w := s.tl.Window(start, end)
	s.mu.Unlock()

	work, slacking := w.Totals()
	return DayView{
		Date:     timeutil.StartOfDay(from),
		Items:    slices.Collect(w.Items()),
		Work:     work,
		Slacking: slacking,
		Days:     w.Days(),
	}
}

// WindowForDay returns the window of the logical day of date
func (s *LogService) WindowForDay(date time.Time) *timelog.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tl.WindowForDay(date)
}

// WindowForWeek returns the window of the week containing date
func (s *LogService) WindowForWeek(date time.Time) *timelog.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tl.WindowForWeek(date)
}

// Status computes today's progress toward the daily target at the current time
func (s *LogService) Status() Status {
	now := s.Now()
	today := s.Today()

	workToday, slackToday := s.WindowForDay(today).Totals()
	workWeek, _ := s.WindowForWeek(today).Totals()

	left := s.target - workToday
	status := Status{
		Today:        today,
		WorkToday:    workToday,
		SlackToday:   slackToday,
		WorkThisWeek: workWeek,
		Target:       s.target,
		TimeLeft:     max(left, 0),
		Till:         now.Add(left),
	}
	return status
}

// Reload re-reads the log file if it changed on disk
func (s *LogService) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reloaded, err := s.tl.CheckReload()
	if err != nil {
		s.logger.Warn("reload failed", "path", s.tl.Path(), "error", err)
		return false, err
	}
	if reloaded {
		s.logger.Info("time log changed on disk, reloaded", "path", s.tl.Path())
	}
	return reloaded, nil
}
