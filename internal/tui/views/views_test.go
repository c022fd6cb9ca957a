package views

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/timelog"
	"github.com/xolan/timelog/internal/timeutil"
	"github.com/xolan/timelog/internal/tui/ui"
)

const fixture = `2024-01-01 09:00: arrive
2024-01-01 10:00: project-a: design
2024-01-01 10:30: **coffee
2024-01-01 12:00: project-b: review

2024-01-02 09:00: arrive
2024-01-02 11:00: project-a: code
`

var testNow = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "timelog.txt")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0644))

	tl, err := timelog.Load(path, timeutil.VirtualMidnight{Hour: 2},
		timelog.WithLocation(time.UTC),
		timelog.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	return service.NewServices(tl, filepath.Join(dir, "config.toml"), config.DefaultConfig(), nil)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderItems(t *testing.T) {
	items := []timelog.Item{
		{
			Start:    time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
			Stop:     time.Date(2024, 1, 1, 10, 45, 0, 0, time.UTC),
			Duration: 75 * time.Minute,
			Text:     "project-a: design",
		},
		{
			Start:    time.Date(2024, 1, 1, 10, 45, 0, 0, time.UTC),
			Stop:     time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
			Duration: 15 * time.Minute,
			Text:     "**coffee",
			Slacking: true,
		},
	}

	out := RenderItems(items, ui.DefaultStyles(), 0)

	assert.Contains(t, out, "1 h 15 min (09:30-10:45) project-a: design")
	assert.Contains(t, out, "0 h 15 min (10:45-11:00) **coffee")
}

func TestRenderItems_Truncates(t *testing.T) {
	items := []timelog.Item{{
		Start:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Stop:     time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Duration: time.Hour,
		Text:     "a very long description that will not fit in a narrow terminal",
	}}

	out := RenderItems(items, ui.DefaultStyles(), itemPrefixWidth+12)

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "narrow terminal")
}

func TestRenderDays_SeparatesDays(t *testing.T) {
	svc := setupTestServices(t)
	view := svc.Log.Range(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), testNow)

	out := RenderDays(view.Days, ui.DefaultStyles(), 0)

	assert.Contains(t, out, "Monday, 2024-01-01 (week 01)")
	assert.Contains(t, out, "Tuesday, 2024-01-02 (week 01)")
	assert.Contains(t, out, "review\n\n")
}

func TestLogModel_Init(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())

	assert.Contains(t, m.View(), "Loading...")

	m, _ = m.Update(m.Init()())

	view := m.View()
	assert.Contains(t, view, "2 h 00 min (09:00-11:00) project-a: code")
	assert.Contains(t, view, "Total work: 2 h 00 min, slacking: 0 h 00 min")
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), m.Date())
}

func TestLogModel_BrowseDays(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.Init()())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.Date())
	view := m.View()
	assert.Contains(t, view, "1 h 00 min (09:00-10:00) project-a: design")
	assert.Contains(t, view, "0 h 30 min (10:00-10:30) **coffee")
	assert.Contains(t, view, "Total work: 2 h 30 min, slacking: 0 h 30 min")

	m, cmd = m.Update(keyRunes("t"))
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), m.Date())
}

func TestLogModel_CannotBrowsePastToday(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})

	assert.Nil(t, cmd)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), m.Date())
}

func TestLogModel_StaleLoadIgnored(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())
	stale := m.Init()()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(stale)

	assert.Contains(t, m.View(), "Loading...")
}

func TestLogModel_AppendEntry(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(keyRunes("n"))
	require.True(t, m.IsInputMode())

	m, _ = m.Update(keyRunes("project-c: test"))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m, cmd = m.Update(cmd())
	require.NotNil(t, cmd)
	assert.Equal(t, ui.LogChangedMsg{}, cmd())

	last, ok := svc.Log.Last()
	require.True(t, ok)
	assert.Equal(t, "project-c: test", last.Text)
	assert.Equal(t, testNow, last.Time)
	assert.True(t, svc.History.Contains("project-c: test"))

	// The input stays open for the next entry
	assert.True(t, m.IsInputMode())
	assert.Empty(t, m.input.Value())
}

func TestLogModel_AppendErrorShown(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())
	m, _ = m.Update(m.Init()())

	m, _ = m.Update(entryAddedMsg{err: &timelog.ValidationError{Reason: "entry text is empty"}})

	assert.Contains(t, m.View(), "Error: invalid entry: entry text is empty")
}

func TestLogModel_BlankInputIgnored(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(keyRunes("n"))
	m, _ = m.Update(keyRunes("   "))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	last, _ := svc.Log.Last()
	assert.Equal(t, "project-a: code", last.Text)
}

func TestLogModel_EscapeLeavesInput(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(keyRunes("n"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.IsInputMode())
}

func TestLogModel_CompletesFromHistory(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(keyRunes("n"))
	m, _ = m.Update(keyRunes("proj"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	// Most recently used text wins
	assert.Equal(t, "project-a: code", m.input.Value())
}

func TestLogModel_VisibleLinesKeepsNewest(t *testing.T) {
	svc := setupTestServices(t)
	m := NewLogModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 9)

	out := m.visibleLines("one\ntwo\nthree\nfour\n")

	assert.Equal(t, "three\nfour\n", out)
}

func TestReportModel_Weekly(t *testing.T) {
	svc := setupTestServices(t)
	m := NewReportModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 30)

	m, _ = m.Update(m.Init()())

	view := m.View()
	assert.Contains(t, view, "Weekly report")
	assert.Contains(t, view, "Jan 1 - Jan 7, 2024")
	assert.Contains(t, view, "4 h 30 min")
	assert.Contains(t, view, "project-a")
	assert.Contains(t, view, "3 h 00 min")
	assert.Contains(t, view, "By category:")
}

func TestReportModel_TogglePeriod(t *testing.T) {
	svc := setupTestServices(t)
	m := NewReportModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())
	m.SetSize(80, 30)
	weekly := m.Init()()

	m, cmd := m.Update(keyRunes("d"))
	require.NotNil(t, cmd)

	// A weekly load that arrives after the toggle is dropped
	m, _ = m.Update(weekly)
	assert.Contains(t, m.View(), "Loading...")

	m, _ = m.Update(cmd())
	view := m.View()
	assert.Contains(t, view, "Daily report")
	assert.Contains(t, view, "Tue, Jan 2, 2024")
	assert.Contains(t, view, "2 h 00 min")
}

func TestReportModel_StepsByPeriod(t *testing.T) {
	svc := setupTestServices(t)
	m := NewReportModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, time.Date(2023, 12, 26, 0, 0, 0, 0, time.UTC), m.date)

	m, _ = m.Update(keyRunes("d"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, time.Date(2023, 12, 27, 0, 0, 0, 0, time.UTC), m.date)

	m, _ = m.Update(keyRunes("t"))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), m.date)
}

func TestReportModel_ReloadsOnLogChange(t *testing.T) {
	svc := setupTestServices(t)
	m := NewReportModel(svc, ui.DefaultStyles(), ui.DefaultKeyMap())

	_, cmd := m.Update(ui.LogChangedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, reportLoadedMsg{}, cmd())

	_, cmd = m.Update(ui.TickMsg(testNow))
	require.NotNil(t, cmd)
}

func TestConfigModel_Init(t *testing.T) {
	svc := setupTestServices(t)
	tp := ui.NewThemeProvider("")
	m := NewConfigModel(svc, tp, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(m.Init()())

	view := m.View()
	assert.Contains(t, view, "virtual_midnight:")
	assert.Contains(t, view, "02:00")
	assert.Contains(t, view, "Using defaults (no config file)")
	assert.Contains(t, view, svc.Log.Path())
	assert.Contains(t, view, ui.DefaultTheme)
}

func TestConfigModel_SelectTheme(t *testing.T) {
	svc := setupTestServices(t)
	tp := ui.NewThemeProvider("")
	m := NewConfigModel(svc, tp, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(keyRunes("t"))
	require.True(t, m.IsSelecting())
	start := m.themeCursor

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, start+1, m.themeCursor)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.IsSelecting())
	assert.Equal(t, ui.ThemeChangeRequestMsg{ThemeName: m.themes[start+1]}, cmd())
}

func TestConfigModel_CancelSelection(t *testing.T) {
	svc := setupTestServices(t)
	tp := ui.NewThemeProvider("")
	m := NewConfigModel(svc, tp, ui.DefaultStyles(), ui.DefaultKeyMap())
	start := m.themeCursor

	m, _ = m.Update(keyRunes("t"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, m.IsSelecting())
	assert.Equal(t, start, m.themeCursor)
}

func TestConfigModel_ThemeChanged(t *testing.T) {
	svc := setupTestServices(t)
	tp := ui.NewThemeProvider("")
	m := NewConfigModel(svc, tp, ui.DefaultStyles(), ui.DefaultKeyMap())

	m, _ = m.Update(ui.ThemeChangedMsg{ThemeName: "nord", Styles: ui.DefaultStyles()})

	assert.Equal(t, "nord", m.themeName)
	assert.Equal(t, "nord", m.themes[m.themeCursor])
}
