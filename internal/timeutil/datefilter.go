package timeutil

import (
	"fmt"
	"time"
)

// VirtualMidnight is the time of day at which one logical day ends and the
// next begins. Work logged between 00:00 and the virtual midnight counts
// toward the previous day.
type VirtualMidnight struct {
	Hour   int
	Minute int
}

// Midnight is a virtual midnight at 00:00, i.e. plain calendar days.
var Midnight = VirtualMidnight{}

// Validate checks that the virtual midnight is a valid time of day.
func (vm VirtualMidnight) Validate() error {
	if vm.Hour < 0 || vm.Hour > 23 {
		return fmt.Errorf("invalid virtual midnight hour %d (must be 0-23)", vm.Hour)
	}
	if vm.Minute < 0 || vm.Minute > 59 {
		return fmt.Errorf("invalid virtual midnight minute %d (must be 0-59)", vm.Minute)
	}
	return nil
}

// String formats the virtual midnight as HH:MM.
func (vm VirtualMidnight) String() string {
	return fmt.Sprintf("%02d:%02d", vm.Hour, vm.Minute)
}

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayStart returns the instant at which the logical day for date begins,
// i.e. the calendar date at the virtual midnight.
func DayStart(date time.Time, vm VirtualMidnight) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), vm.Hour, vm.Minute, 0, 0, date.Location())
}

// LogicalDay returns the date (at 00:00) of the logical day containing t.
// With a 02:00 virtual midnight, 2024-01-01 01:30 belongs to 2023-12-31.
func LogicalDay(t time.Time, vm VirtualMidnight) time.Time {
	day := StartOfDay(t)
	if t.Before(DayStart(day, vm)) {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// DifferentDays reports whether a and b fall on different logical days.
func DifferentDays(a, b time.Time, vm VirtualMidnight) bool {
	return !LogicalDay(a, vm).Equal(LogicalDay(b, vm))
}

// StartOfWeek returns Monday 00:00:00 of the week containing the given date (ISO standard)
// Handles the Sunday edge case where Go's Weekday() returns 0
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 { // Sunday
		weekday = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// DayRange returns the half-open range [start, end) of the logical day for date.
func DayRange(date time.Time, vm VirtualMidnight) (start, end time.Time) {
	day := StartOfDay(date)
	return DayStart(day, vm), DayStart(day.AddDate(0, 0, 1), vm)
}

// WeekRange returns the half-open range [start, end) of the Monday-anchored
// logical week containing date.
func WeekRange(date time.Time, vm VirtualMidnight) (start, end time.Time) {
	monday := StartOfWeek(date)
	return DayStart(monday, vm), DayStart(monday.AddDate(0, 0, 7), vm)
}

// IsInRange checks if the given time t falls within the half-open range [start, end)
func IsInRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
