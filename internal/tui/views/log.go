package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/timelog/internal/entry"
	"github.com/xolan/timelog/internal/report"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/tui/ui"
)

// logMode represents the current mode of the log view
type logMode int

const (
	logModeNormal logMode = iota
	logModeInput
)

// LogModel shows the items of one logical day and the input line that
// appends new entries
type LogModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width  int
	height int
	date   time.Time
	follow bool // date tracks today across virtual midnight
	day    service.DayView
	loaded bool
	err    error

	mode  logMode
	input textinput.Model
}

// NewLogModel creates a new log view model showing today
func NewLogModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) LogModel {
	input := textinput.New()
	input.Placeholder = "What did you just finish? (category: task, ** for slacking)"
	input.CharLimit = 500
	input.Width = 60
	input.ShowSuggestions = true

	return LogModel{
		services: services,
		styles:   styles,
		keys:     keys,
		date:     services.Log.Today(),
		follow:   true,
		input:    input,
	}
}

// dayLoadedMsg is sent when the items of a day are loaded
type dayLoadedMsg struct {
	date time.Time
	day  service.DayView
}

// entryAddedMsg is sent after an entry was appended
type entryAddedMsg struct {
	entry entry.Entry
	err   error
}

// Init implements tea.Model
func (m LogModel) Init() tea.Cmd {
	return m.loadDay()
}

// Update implements tea.Model
func (m LogModel) Update(msg tea.Msg) (LogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == logModeInput {
			return m.handleInputMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Left):
			return m.showDate(m.date.AddDate(0, 0, -1))
		case key.Matches(msg, m.keys.Right):
			next := m.date.AddDate(0, 0, 1)
			if next.After(m.services.Log.Today()) {
				return m, nil
			}
			return m.showDate(next)
		case key.Matches(msg, m.keys.Today):
			return m.showDate(m.services.Log.Today())
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadDay()
		case key.Matches(msg, m.keys.New):
			m.mode = logModeInput
			m.err = nil
			m.input.SetValue("")
			m.input.SetSuggestions(nil)
			m.input.Focus()
			return m, textinput.Blink
		}

	case dayLoadedMsg:
		// Drop stale loads from before the last date change
		if msg.date.Equal(m.date) {
			m.day = msg.day
			m.loaded = true
		}
		return m, nil

	case entryAddedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.services.History.Add(msg.entry.Text)
		m.input.SetValue("")
		m.input.SetSuggestions(nil)
		return m, func() tea.Msg { return ui.LogChangedMsg{} }

	case ui.LogChangedMsg:
		if msg.Err != nil {
			m.err = msg.Err
		}
		return m.refresh()

	case ui.TickMsg:
		return m.refresh()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode == logModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleInputMode handles key events while the input line is focused
func (m LogModel) handleInputMode(msg tea.KeyMsg) (LogModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		return m, m.addEntry(text)
	case key.Matches(msg, m.keys.Back):
		m.mode = logModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.input.SetSuggestions(m.services.History.Suggest(m.input.Value()))
	return m, cmd
}

func (m LogModel) showDate(date time.Time) (LogModel, tea.Cmd) {
	m.date = date
	m.follow = date.Equal(m.services.Log.Today())
	m.loaded = false
	return m, m.loadDay()
}

// refresh reloads the shown day, moving to the new day after virtual midnight
func (m LogModel) refresh() (LogModel, tea.Cmd) {
	if m.follow {
		m.date = m.services.Log.Today()
	}
	return m, m.loadDay()
}

// View implements tea.Model
func (m LogModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Log"))
	b.WriteString("\n")

	switch {
	case !m.loaded:
		b.WriteString("Loading...")
		b.WriteString("\n")
	case len(m.day.Items) == 0:
		b.WriteString(m.styles.StatLabel.Render("Nothing logged"))
		b.WriteString("\n")
	default:
		b.WriteString(m.visibleLines(RenderDays(m.day.Days, m.styles, m.width)))
		b.WriteString(rule(m.width))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Total work: %s, slacking: %s\n",
			report.FormatDuration(m.day.Work),
			report.FormatDuration(m.day.Slacking)))
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == logModeInput {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(m.styles.StatusHelp.Render("Press n to log what you just finished"))
	}

	return b.String()
}

// visibleLines keeps the newest lines that fit the view height
func (m LogModel) visibleLines(rendered string) string {
	// Title, rule, totals, error and input line
	room := m.height - 7
	lines := strings.SplitAfter(strings.TrimSuffix(rendered, "\n"), "\n")
	if room <= 0 || len(lines) <= room {
		return rendered
	}
	return strings.Join(lines[len(lines)-room:], "") + "\n"
}

// SetSize sets the view dimensions
func (m *LogModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-6, 20)
}

// Date returns the logical day being shown
func (m LogModel) Date() time.Time {
	return m.date
}

// IsInputMode returns true when the view is capturing keyboard input
func (m LogModel) IsInputMode() bool {
	return m.mode == logModeInput
}

// loadDay creates a command to load the shown day
func (m LogModel) loadDay() tea.Cmd {
	date := m.date
	logs := m.services.Log
	return func() tea.Msg {
		return dayLoadedMsg{date: date, day: logs.Day(date)}
	}
}

// addEntry creates a command to append text to the log at the current time
func (m LogModel) addEntry(text string) tea.Cmd {
	logs := m.services.Log
	return func() tea.Msg {
		e, err := logs.Add(text, time.Time{})
		return entryAddedMsg{entry: e, err: err}
	}
}
