package entry

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the layout of the timestamp that prefixes every log line.
const TimestampLayout = "2006-01-02 15:04"

// linePattern matches "YYYY-MM-DD HH:MM: text". The separator after the
// timestamp is ": ", or a bare ":" at the end of the line.
var linePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}):(?: (.*))?$`)

// ParseLine parses a single non-blank log line into an Entry.
// The timestamp is interpreted in loc.
// Valid inputs: "2024-01-15 09:00: arrived", "2024-01-15 12:30: project-a: review"
// Invalid inputs: "arrived", "2024-01-15: arrived", "2024-13-01 09:00: x"
func ParseLine(line string, loc *time.Location) (Entry, error) {
	line = strings.TrimRight(line, " \t\r")
	matches := linePattern.FindStringSubmatch(line)
	if matches == nil {
		return Entry{}, fmt.Errorf("invalid line format: expected 'YYYY-MM-DD HH:MM: text', got %q", line)
	}

	t, err := time.ParseInLocation(TimestampLayout, matches[1], loc)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid timestamp %q: %w", matches[1], err)
	}

	return Entry{Time: t, Text: matches[2]}, nil
}

// FormatLine renders an Entry as a log line, without the trailing newline.
func FormatLine(e Entry) string {
	return e.Time.Format(TimestampLayout) + ": " + e.Text
}

// NormalizeText trims surrounding whitespace from entry text and reports
// whether it can be written as a single log line.
func NormalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("entry text cannot be empty")
	}
	if strings.ContainsAny(text, "\r\n") {
		return "", fmt.Errorf("entry text must be a single line")
	}
	return text, nil
}
