package storage

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/osutil"
)

// LogFile is the name of the plain text time log
const LogFile = "timelog.txt"

// maxLineSize bounds a single log line; bufio.Scanner's default of 64KiB is
// too small for pasted notes.
const maxLineSize = 1024 * 1024

// Record is one entry line of the log file.
type Record struct {
	Entry       entry.Entry
	Line        int  // Line number in the file (1-indexed)
	BreakBefore bool // A blank line separates this entry from the previous one
}

// FileState identifies a version of the log file on disk.
type FileState struct {
	ModTime time.Time
	Size    int64
}

// GetStoragePath returns the default path of the time log file.
// Creates the application directory if it doesn't exist.
func GetStoragePath() (string, error) {
	appDir, err := osutil.AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, LogFile), nil
}

// Contents is the parsed log file.
type Contents struct {
	Records []Record

	// TrailingBreak is set when blank lines follow the last entry. The next
	// appended entry inherits the break.
	TrailingBreak bool
}

// ReadRecords reads and parses every entry line of the log file.
// Returns an empty slice if the file doesn't exist.
func ReadRecords(path string, loc *time.Location) ([]Record, error) {
	contents, err := ReadLog(path, loc)
	if err != nil {
		return nil, err
	}
	return contents.Records, nil
}

// ReadLog reads and parses the whole log file.
// Blank lines produce no record; they set BreakBefore on the next one, or
// TrailingBreak when no entry follows.
// The first malformed or out-of-order line aborts the read with a *ParseError.
func ReadLog(path string, loc *time.Location) (Contents, error) {
	records := []Record{}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Contents{Records: records}, nil
		}
		return Contents{}, &IOError{Op: "read", Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNumber := 0
	pendingBreak := false
	for scanner.Scan() {
		lineNumber++
		lineContent := scanner.Text()

		if strings.TrimSpace(lineContent) == "" {
			pendingBreak = true
			continue
		}

		e, err := entry.ParseLine(lineContent, loc)
		if err != nil {
			return Contents{}, &ParseError{Path: path, Line: lineNumber, Content: lineContent, Err: err}
		}
		if n := len(records); n > 0 && e.Time.Before(records[n-1].Entry.Time) {
			return Contents{}, &ParseError{Path: path, Line: lineNumber, Content: lineContent, Err: ErrOutOfOrder}
		}

		records = append(records, Record{Entry: e, Line: lineNumber, BreakBefore: pendingBreak})
		pendingBreak = false
	}

	if err := scanner.Err(); err != nil {
		return Contents{}, &IOError{Op: "read", Path: path, Err: err}
	}

	return Contents{Records: records, TrailingBreak: pendingBreak}, nil
}

// AppendEntry appends a single entry line to the log file and syncs it to disk.
// Creates the file if it doesn't exist. When breakBefore is set a blank line
// is written first. A missing trailing newline left by a hand edit is repaired
// so the new entry always starts on its own line.
func AppendEntry(path string, e entry.Entry, breakBefore bool) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return &IOError{Op: "append", Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	var b strings.Builder

	terminated, err := endsWithNewline(file)
	if err != nil {
		return &IOError{Op: "append", Path: path, Err: err}
	}
	if !terminated {
		b.WriteString("\n")
	}
	if breakBefore {
		b.WriteString("\n")
	}
	b.WriteString(entry.FormatLine(e))
	b.WriteString("\n")

	if _, err := file.WriteString(b.String()); err != nil {
		return &IOError{Op: "append", Path: path, Err: err}
	}
	if err := file.Sync(); err != nil {
		return &IOError{Op: "append", Path: path, Err: err}
	}
	return nil
}

// endsWithNewline reports whether the file is empty or ends with '\n'.
func endsWithNewline(file *os.File) (bool, error) {
	info, err := file.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}

	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return last[0] == '\n', nil
}

// Stat returns the current FileState of the log file.
// A missing file yields the zero FileState.
func Stat(path string) (FileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileState{}, nil
		}
		return FileState{}, &IOError{Op: "stat", Path: path, Err: err}
	}
	return FileState{ModTime: info.ModTime(), Size: info.Size()}, nil
}

// StorageHealth summarises the contents of the log file.
type StorageHealth struct {
	TotalLines int       // Total number of lines in the file
	Entries    int       // Number of entry lines
	Breaks     int       // Number of break markers between entries
	First      time.Time // Timestamp of the first entry
	Last       time.Time // Timestamp of the last entry
}

// ValidateStorage parses the whole log file and summarises it.
// Returns the first *ParseError if any line is invalid.
func ValidateStorage(path string, loc *time.Location) (StorageHealth, error) {
	var health StorageHealth

	records, err := ReadRecords(path, loc)
	if err != nil {
		return health, err
	}

	health.TotalLines, err = countLines(path)
	if err != nil {
		return health, err
	}

	health.Entries = len(records)
	for i, r := range records {
		if i > 0 && r.BreakBefore {
			health.Breaks++
		}
	}
	if len(records) > 0 {
		health.First = records[0].Entry.Time
		health.Last = records[len(records)-1].Entry.Time
	}
	return health, nil
}

func countLines(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, &IOError{Op: "read", Path: path, Err: err}
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lines := 0
	for scanner.Scan() {
		lines++
	}
	if err := scanner.Err(); err != nil {
		return 0, &IOError{Op: "read", Path: path, Err: err}
	}
	return lines, nil
}

// Same reports whether two states describe the same version of the file.
func (s FileState) Same(other FileState) bool {
	return s.Size == other.Size && s.ModTime.Equal(other.ModTime)
}
