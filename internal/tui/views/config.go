package views

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/tui/ui"
)

// maxVisibleThemes is the number of themes listed at once
const maxVisibleThemes = 10

// ConfigModel shows the effective configuration and lets the user pick a theme
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	// UI state
	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	themeName string
	saveErr   error

	// Theme selector state
	selecting   bool
	themes      []string
	themeCursor int
	themeOffset int
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        themeProvider.AvailableThemes(),
		themeName:     themeProvider.CurrentName(),
	}
	m.resetCursor()
	return m
}

// configLoadedMsg is sent when config is loaded
type configLoadedMsg struct {
	config config.Config
	path   string
	exists bool
}

// ConfigSavedMsg reports the outcome of persisting the theme
type ConfigSavedMsg struct {
	Err error
}

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selecting {
			return m.handleThemeSelection(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Select), msg.String() == "t":
			m.selecting = true
			m.resetCursor()
			return m, nil
		case key.Matches(msg, m.keys.Right):
			// Cycle themes without opening the selector
			return m, requestThemeChange(m.themeProvider.NextTheme())
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadConfig()
		}

	case configLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists

	case ConfigSavedMsg:
		m.saveErr = msg.Err
		if msg.Err == nil {
			return m, m.loadConfig()
		}

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.resetCursor()
		return m, nil
	}

	return m, nil
}

// handleThemeSelection handles keys while the theme list is open
func (m ConfigModel) handleThemeSelection(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.scrollToCursor()
		}
	case key.Matches(msg, m.keys.Select):
		m.selecting = false
		if len(m.themes) == 0 {
			return m, nil
		}
		return m, requestThemeChange(m.themes[m.themeCursor])
	case key.Matches(msg, m.keys.Back):
		m.selecting = false
		m.resetCursor()
	}
	return m, nil
}

// resetCursor moves the cursor to the active theme
func (m *ConfigModel) resetCursor() {
	if i := slices.Index(m.themes, m.themeName); i >= 0 {
		m.themeCursor = i
	}
	m.scrollToCursor()
}

// scrollToCursor adjusts the offset so the cursor stays visible
func (m *ConfigModel) scrollToCursor() {
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

func requestThemeChange(name string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeChangeRequestMsg{ThemeName: name}
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n")

	b.WriteString(renderStatLine(m.styles, "Config file:", m.path))
	b.WriteString(m.styles.StatLabel.Render("Status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n")
	if m.saveErr != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Could not save theme: %v", m.saveErr)))
		b.WriteString("\n")
	}
	b.WriteString(rule(m.width))
	b.WriteString("\n")

	b.WriteString(renderStatLine(m.styles, "timelog_file:", m.services.Log.Path()))
	b.WriteString(renderStatLine(m.styles, "virtual_midnight:", m.config.VirtualMidnight))
	b.WriteString(renderStatLine(m.styles, "hours:", strconv.FormatFloat(m.config.Hours, 'f', -1, 64)))
	b.WriteString(renderStatLine(m.styles, "timezone:", m.config.Timezone))
	b.WriteString(renderStatLine(m.styles, "history_size:", strconv.Itoa(m.config.HistorySize)))

	if m.selecting {
		b.WriteString(m.renderThemeSelector())
	} else {
		b.WriteString(renderStatLine(m.styles, "theme:", m.themeName))
		b.WriteString("\n")
		b.WriteString(m.styles.StatusHelp.Render("Press Enter or t to pick a theme, → to cycle"))
	}

	return b.String()
}

// renderThemeSelector renders the scrolling theme list
func (m ConfigModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(renderStatLine(m.styles, "theme:", "select a theme"))
	b.WriteString("\n")

	end := min(m.themeOffset+maxVisibleThemes, len(m.themes))
	if m.themeOffset > 0 {
		b.WriteString(m.styles.StatusHelp.Render("  ↑ more"))
		b.WriteString("\n")
	}

	for i := m.themeOffset; i < end; i++ {
		name := m.themes[i]
		current := ""
		if name == m.themeName {
			current = " (current)"
		}
		if i == m.themeCursor {
			b.WriteString(m.styles.Selected.Render("▸ " + name))
			b.WriteString(m.styles.Success.Render(current))
		} else {
			b.WriteString("  " + name)
			b.WriteString(m.styles.Success.Render(current))
		}
		b.WriteString("\n")
	}

	if end < len(m.themes) {
		b.WriteString(m.styles.StatusHelp.Render("  ↓ more"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.StatusHelp.Render("↑/↓ navigate  Enter select  Esc cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsSelecting returns true while the theme list is open
func (m ConfigModel) IsSelecting() bool {
	return m.selecting
}

// loadConfig creates a command to load config
func (m ConfigModel) loadConfig() tea.Cmd {
	configs := m.services.Config
	return func() tea.Msg {
		return configLoadedMsg{
			config: configs.Get(),
			path:   configs.GetPath(),
			exists: configs.Exists(),
		}
	}
}
