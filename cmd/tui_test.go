package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunTUI_ListThemes(t *testing.T) {
	env := setupEnv(t, fixture)
	setFlag(t, tuiCmd, "list-themes", "true")

	runTUI(tuiCmd)

	assert.Equal(t, 0, env.exitCode)
	assert.Contains(t, env.stdout.String(), "dracula\n")
	assert.Contains(t, env.stdout.String(), "nord\n")
}

func TestRunTUI_RequiresTerminal(t *testing.T) {
	env := setupEnv(t, fixture)

	runTUI(tuiCmd)

	assert.Equal(t, 1, env.exitCode)
	assert.Contains(t, env.stderr.String(), "Error: The TUI needs an interactive terminal")
}

func TestRunTUI_BadLogFile(t *testing.T) {
	env := setupEnv(t, fixture)
	deps.IsTerminal = func() bool { return true }
	setFlag(t, tuiCmd, "log-file", filepath.Join(t.TempDir(), "missing", "tui.log"))

	runTUI(tuiCmd)

	assert.Equal(t, 1, env.exitCode)
	assert.Contains(t, env.stderr.String(), "Error: Failed to open log file")
}
