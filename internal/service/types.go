// Package service provides the operations shared by the CLI and TUI
// frontends on top of a single loaded time log.
package service

import (
	"time"

	"github.com/xolan/timelog/internal/timelog"
)

// DayView contains the items of one logical day
type DayView struct {
	Date     time.Time
	Items    []timelog.Item
	Work     time.Duration
	Slacking time.Duration
	// Days splits Items by logical day; a single day view has at most one
	Days []timelog.Day
}

// Status summarises progress toward the daily target
type Status struct {
	Today        time.Time
	WorkToday    time.Duration
	SlackToday   time.Duration
	WorkThisWeek time.Duration
	Target       time.Duration
	// TimeLeft is Target minus WorkToday, never negative
	TimeLeft time.Duration
	// Till is when TimeLeft runs out if work starts now
	Till time.Time
}

// Period selects the window a report covers
type Period int

const (
	PeriodWeek Period = iota
	PeriodDay
)
