package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine_Valid(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantTime time.Time
		wantText string
	}{
		{
			name:     "simple entry",
			line:     "2024-01-15 09:00: arrived",
			wantTime: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
			wantText: "arrived",
		},
		{
			name:     "category with colon in text",
			line:     "2024-01-15 12:30: project-a: write spec",
			wantTime: time.Date(2024, time.January, 15, 12, 30, 0, 0, time.UTC),
			wantText: "project-a: write spec",
		},
		{
			name:     "slacking marker",
			line:     "2024-01-15 10:30: **coffee",
			wantTime: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
			wantText: "**coffee",
		},
		{
			name:     "trailing whitespace stripped",
			line:     "2024-01-15 10:30: lunch  \r",
			wantTime: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
			wantText: "lunch",
		},
		{
			name:     "empty text",
			line:     "2024-01-15 10:30:",
			wantTime: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
			wantText: "",
		},
		{
			name:     "leap day",
			line:     "2024-02-29 23:59: late",
			wantTime: time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC),
			wantText: "late",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ParseLine(tt.line, time.UTC)
			require.NoError(t, err)
			assert.True(t, e.Time.Equal(tt.wantTime), "time = %v, want %v", e.Time, tt.wantTime)
			assert.Equal(t, tt.wantText, e.Text)
		})
	}
}

func TestParseLine_Invalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no timestamp", "arrived"},
		{"date only", "2024-01-15: arrived"},
		{"missing separator", "2024-01-15 09:00 arrived"},
		{"seconds in timestamp", "2024-01-15 09:00:30: arrived"},
		{"invalid month", "2024-13-01 09:00: arrived"},
		{"invalid day", "2023-02-29 09:00: arrived"},
		{"invalid hour", "2024-01-15 25:00: arrived"},
		{"leading whitespace", " 2024-01-15 09:00: arrived"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line, time.UTC)
			assert.Error(t, err)
		})
	}
}

func TestFormatLine(t *testing.T) {
	e := Entry{Time: time.Date(2024, time.January, 5, 8, 7, 0, 0, time.UTC), Text: "project-a: review"}
	line := FormatLine(e)
	assert.Equal(t, "2024-01-05 08:07: project-a: review", line)

	parsed, err := ParseLine(line, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, e.Text, parsed.Text)
	assert.True(t, e.Time.Equal(parsed.Time))
}

func TestNormalizeText(t *testing.T) {
	got, err := NormalizeText("  write tests \t")
	require.NoError(t, err)
	assert.Equal(t, "write tests", got)

	for _, bad := range []string{"", "   ", "\t\n", "two\nlines", "carriage\rreturn"} {
		_, err := NormalizeText(bad)
		assert.Error(t, err, "NormalizeText(%q)", bad)
	}
}
