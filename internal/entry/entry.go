// Package entry defines a single punch in the time log and the rules that
// classify its text.
package entry

import (
	"strings"
	"time"
)

// SlackingMarker marks an entry text as slacking rather than work.
const SlackingMarker = "**"

// Entry represents a single timestamped line of the time log
type Entry struct {
	Time time.Time `json:"time" yaml:"time"`
	Text string    `json:"text" yaml:"text"`
}

// IsSlacking reports whether text carries the slacking marker.
func IsSlacking(text string) bool {
	return strings.Contains(text, SlackingMarker)
}

// Category returns the category of an entry text: the trimmed text before the
// first colon. ok is false when the text has no colon or the prefix is blank.
// Example: "project-a: write spec" -> ("project-a", true)
func Category(text string) (name string, ok bool) {
	before, _, found := strings.Cut(text, ":")
	if !found {
		return "", false
	}
	name = strings.TrimSpace(before)
	if name == "" {
		return "", false
	}
	return name, true
}
