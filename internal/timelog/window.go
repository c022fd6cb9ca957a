package timelog

import (
	"iter"
	"time"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/storage"
	"github.com/xolan/timelog/internal/timeutil"
)

// Item is the interval between two consecutive entries of an unbroken run.
// Its text is the text of the entry that closes the interval.
type Item struct {
	Start    time.Time
	Stop     time.Time
	Duration time.Duration
	Text     string
	Slacking bool
}

func newItem(start, stop time.Time, text string) Item {
	return Item{
		Start:    start,
		Stop:     stop,
		Duration: stop.Sub(start),
		Text:     text,
		Slacking: entry.IsSlacking(text),
	}
}

// Day holds the items of one logical day.
type Day struct {
	Date     time.Time
	Items    []Item
	Work     time.Duration
	Slacking time.Duration
}

// Window is an immutable view over the half-open range [Start, End) of a
// TimeLog. Items are rebuilt on every call; nothing is cached.
type Window struct {
	start   time.Time
	end     time.Time
	vm      timeutil.VirtualMidnight
	records []storage.Record
	seeded  bool
}

// Start returns the inclusive lower bound of the window.
func (w *Window) Start() time.Time {
	return w.start
}

// End returns the exclusive upper bound of the window.
func (w *Window) End() time.Time {
	return w.end
}

// VirtualMidnight returns the day boundary the window was built with.
func (w *Window) VirtualMidnight() timeutil.VirtualMidnight {
	return w.vm
}

// EntriesInRange returns the entries with Start <= t < End, preceded by the
// last entry before Start when one exists.
func (w *Window) EntriesInRange() []entry.Entry {
	entries := make([]entry.Entry, len(w.records))
	for i, r := range w.records {
		entries[i] = r.Entry
	}
	return entries
}

// Seed returns the entry preceding Start that opens the first item, if any.
func (w *Window) Seed() (entry.Entry, bool) {
	if !w.seeded {
		return entry.Entry{}, false
	}
	return w.records[0].Entry, true
}

// Items yields one Item per pair of consecutive entries not separated by a
// break marker. The sequence may be iterated any number of times.
func (w *Window) Items() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for i := 1; i < len(w.records); i++ {
			cur := w.records[i]
			if cur.BreakBefore {
				continue
			}
			prev := w.records[i-1]
			if !yield(newItem(prev.Entry.Time, cur.Entry.Time, cur.Entry.Text)) {
				return
			}
		}
	}
}

// Totals sums item durations into work and slacking time.
func (w *Window) Totals() (work, slacking time.Duration) {
	for item := range w.Items() {
		if item.Slacking {
			slacking += item.Duration
		} else {
			work += item.Duration
		}
	}
	return work, slacking
}

// LastTime returns the stop time of the last item, or false if the window
// has no items.
func (w *Window) LastTime() (time.Time, bool) {
	var (
		last  time.Time
		found bool
	)
	for item := range w.Items() {
		last = item.Stop
		found = true
	}
	return last, found
}

// Days groups items by the logical day of their stop time, oldest first.
func (w *Window) Days() []Day {
	var days []Day
	for item := range w.Items() {
		date := timeutil.LogicalDay(item.Stop, w.vm)
		if len(days) == 0 || !days[len(days)-1].Date.Equal(date) {
			days = append(days, Day{Date: date})
		}
		day := &days[len(days)-1]
		day.Items = append(day.Items, item)
		if item.Slacking {
			day.Slacking += item.Duration
		} else {
			day.Work += item.Duration
		}
	}
	return days
}
