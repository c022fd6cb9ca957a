// Package filter narrows the items of a time window down by keyword,
// category or kind.
package filter

import (
	"strings"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/timelog"
)

// Filter represents criteria for the items of a time window.
// All fields are optional - zero values match all items.
type Filter struct {
	Keyword  string // Case-insensitive substring search in item texts
	Category string // Exact category match (case-insensitive)
	WorkOnly bool   // Leave out slacking items
}

// NewFilter creates a new Filter with the given criteria.
func NewFilter(keyword, category string, workOnly bool) *Filter {
	return &Filter{
		Keyword:  strings.TrimSpace(keyword),
		Category: strings.TrimSpace(category),
		WorkOnly: workOnly,
	}
}

// IsEmpty returns true if the filter matches all items. A nil filter is empty.
func (f *Filter) IsEmpty() bool {
	return f == nil || (f.Keyword == "" && f.Category == "" && !f.WorkOnly)
}

// MatchesKeyword returns true if the keyword is found in the item's text (case-insensitive).
func (f *Filter) MatchesKeyword(item timelog.Item) bool {
	if f.Keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Text), strings.ToLower(f.Keyword))
}

// MatchesCategory returns true if the item's category equals the filter category (case-insensitive).
func (f *Filter) MatchesCategory(item timelog.Item) bool {
	if f.Category == "" {
		return true
	}
	name, ok := entry.Category(item.Text)
	return ok && strings.EqualFold(name, f.Category)
}

// Matches returns true if the item satisfies every criterion
func (f *Filter) Matches(item timelog.Item) bool {
	if f.IsEmpty() {
		return true
	}
	if f.WorkOnly && item.Slacking {
		return false
	}
	return f.MatchesKeyword(item) && f.MatchesCategory(item)
}

// FilterItems returns the items that match the filter.
// If the filter is empty, returns items unchanged.
func FilterItems(items []timelog.Item, f *Filter) []timelog.Item {
	if f.IsEmpty() {
		return items
	}

	filtered := make([]timelog.Item, 0)
	for _, item := range items {
		if f.Matches(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FilterDays filters the items of each day and recomputes the day totals.
// Days left without items are dropped.
func FilterDays(days []timelog.Day, f *Filter) []timelog.Day {
	if f.IsEmpty() {
		return days
	}

	filtered := make([]timelog.Day, 0, len(days))
	for _, day := range days {
		items := FilterItems(day.Items, f)
		if len(items) == 0 {
			continue
		}
		out := timelog.Day{Date: day.Date, Items: items}
		for _, item := range items {
			if item.Slacking {
				out.Slacking += item.Duration
			} else {
				out.Work += item.Duration
			}
		}
		filtered = append(filtered, out)
	}
	return filtered
}
