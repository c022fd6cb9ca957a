package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/timelog/internal/timelog"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// makeItem creates an item starting startMin minutes after 09:00
func makeItem(text string, startMin, minutes int, slacking bool) timelog.Item {
	start := base.Add(time.Duration(startMin) * time.Minute)
	d := time.Duration(minutes) * time.Minute
	return timelog.Item{Start: start, Stop: start.Add(d), Duration: d, Text: text, Slacking: slacking}
}

func testItems() []timelog.Item {
	return []timelog.Item{
		makeItem("project-a: design", 0, 60, false),
		makeItem("**coffee", 60, 30, true),
		makeItem("Project-B: review meeting", 90, 90, false),
		makeItem("email", 180, 15, false),
	}
}

func texts(items []timelog.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Text)
	}
	return out
}

func TestNewFilter(t *testing.T) {
	f := NewFilter("  meeting ", " project-b ", true)

	assert.Equal(t, "meeting", f.Keyword)
	assert.Equal(t, "project-b", f.Category)
	assert.True(t, f.WorkOnly)
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{"nil filter", nil, true},
		{"zero filter", &Filter{}, true},
		{"blank criteria", NewFilter(" ", "", false), true},
		{"keyword", NewFilter("x", "", false), false},
		{"category", NewFilter("", "x", false), false},
		{"work only", NewFilter("", "", true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.IsEmpty())
		})
	}
}

func TestFilterItems(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   []string
	}{
		{"empty filter keeps all", NewFilter("", "", false), []string{"project-a: design", "**coffee", "Project-B: review meeting", "email"}},
		{"keyword is case-insensitive", NewFilter("MEETING", "", false), []string{"Project-B: review meeting"}},
		{"keyword matches category text", NewFilter("project", "", false), []string{"project-a: design", "Project-B: review meeting"}},
		{"category is case-insensitive", NewFilter("", "project-b", false), []string{"Project-B: review meeting"}},
		{"category excludes uncategorized", NewFilter("", "email", false), []string{}},
		{"work only drops slacking", NewFilter("", "", true), []string{"project-a: design", "Project-B: review meeting", "email"}},
		{"criteria combine with AND", NewFilter("design", "project-b", false), []string{}},
		{"no match", NewFilter("lunch", "", false), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, texts(FilterItems(testItems(), tt.filter)))
		})
	}
}

func TestFilterDays(t *testing.T) {
	items := testItems()
	days := []timelog.Day{
		{Date: base, Items: items[:2], Work: time.Hour, Slacking: 30 * time.Minute},
		{Date: base.AddDate(0, 0, 1), Items: items[2:], Work: 105 * time.Minute},
	}

	t.Run("empty filter returns input", func(t *testing.T) {
		assert.Equal(t, days, FilterDays(days, nil))
	})

	t.Run("totals are recomputed", func(t *testing.T) {
		got := FilterDays(days, NewFilter("", "", true))

		require.Len(t, got, 2)
		assert.Equal(t, time.Hour, got[0].Work)
		assert.Zero(t, got[0].Slacking)
		assert.Equal(t, []string{"project-a: design"}, texts(got[0].Items))
	})

	t.Run("days without matches are dropped", func(t *testing.T) {
		got := FilterDays(days, NewFilter("review", "", false))

		require.Len(t, got, 1)
		assert.Equal(t, base.AddDate(0, 0, 1), got[0].Date)
		assert.Equal(t, 90*time.Minute, got[0].Work)
	})
}
