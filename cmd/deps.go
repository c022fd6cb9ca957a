package cmd

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/storage"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout      io.Writer
	Stderr      io.Writer
	Stdin       io.Reader
	Exit        func(code int)
	StoragePath func() (string, error)
	ConfigPath  func() (string, error)
	Now         func() time.Time
	// TerminalWidth returns the width of stdout, or 0 when stdout is not a terminal
	TerminalWidth func() int
	// IsTerminal reports whether stdin and stdout are both terminals
	IsTerminal func() bool
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Stdin:         os.Stdin,
		Exit:          os.Exit,
		StoragePath:   storage.GetStoragePath,
		ConfigPath:    config.GetConfigPath,
		Now:           time.Now,
		TerminalWidth: terminalWidth,
		IsTerminal:    isTerminal,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
