package storage

import (
	"errors"
	"fmt"
)

// ErrOutOfOrder is the cause of a ParseError for a line whose timestamp is
// earlier than the line before it.
var ErrOutOfOrder = errors.New("timestamp is earlier than the previous entry")

// ParseError reports a log line that could not be accepted. A log containing
// one is rejected as a whole.
type ParseError struct {
	Path    string // File the line was read from
	Line    int    // Line number in the file (1-indexed)
	Content string // Raw content of the offending line
	Err     error  // Description of the parsing error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError reports a failure to read or write the log file.
type IOError struct {
	Op   string // "read", "append" or "stat"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
