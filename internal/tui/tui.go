// Package tui provides the interactive terminal front end of timelog.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/tui/ui"
	"github.com/xolan/timelog/internal/tui/views"
	"github.com/xolan/timelog/internal/watch"
)

// Tab represents a view tab
type Tab int

const (
	TabLog Tab = iota
	TabReport
	TabConfig
)

var tabNames = []string{"Log", "Report", "Config"}

// RefreshInterval is how often the status line and views are recomputed
const RefreshInterval = 30 * time.Second

// Model is the root TUI model
type Model struct {
	services *service.Services
	watcher  *watch.FileWatcher

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool
	status    service.Status

	// View models
	logView    views.LogModel
	reportView views.ReportModel
	configView views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// statusMsg carries a freshly computed status line
type statusMsg struct {
	status service.Status
}

// fileChangedMsg is sent when the watcher saw the log file change
type fileChangedMsg struct{}

// New creates the root model. watcher may be nil to disable live reload.
func New(services *service.Services, watcher *watch.FileWatcher) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		watcher:       watcher,
		activeTab:     TabLog,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		logView:       views.NewLogModel(services, styles, keys),
		reportView:    views.NewReportModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.logView.Init(),
		m.reportView.Init(),
		m.configView.Init(),
		m.loadStatus(),
		tick(),
		m.waitForFileChange(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// modalInput blocks tab switching, capturingKeys also blocks printable shortcuts
		modalInput := m.isModalInputMode()
		capturingKeys := m.isCapturingKeys()

		switch {
		case key.Matches(msg, m.keys.ForceQuit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Quit) && !capturingKeys:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !capturingKeys:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, nil

		case key.Matches(msg, m.keys.PrevTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, nil

		case key.Matches(msg, m.keys.Tab1) && !capturingKeys:
			m.activeTab = TabLog
			return m, nil

		case key.Matches(msg, m.keys.Tab2) && !capturingKeys:
			m.activeTab = TabReport
			return m, nil

		case key.Matches(msg, m.keys.Tab3) && !capturingKeys:
			m.activeTab = TabConfig
			return m, nil
		}

		// Keys only go to the active view
		var cmd tea.Cmd
		switch m.activeTab {
		case TabLog:
			m.logView, cmd = m.logView.Update(msg)
		case TabReport:
			m.reportView, cmd = m.reportView.Update(msg)
		case TabConfig:
			m.configView, cmd = m.configView.Update(msg)
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Header, tabs, status line and key bar
		contentHeight := m.height - 7
		m.logView.SetSize(m.width-4, contentHeight)
		m.reportView.SetSize(m.width-4, contentHeight)
		m.configView.SetSize(m.width-4, contentHeight)
		return m, nil

	case statusMsg:
		m.status = msg.status
		return m, nil

	case ui.TickMsg:
		var cmd tea.Cmd
		m, cmd = m.broadcast(msg)
		return m, tea.Batch(cmd, m.loadStatus(), tick())

	case fileChangedMsg:
		return m, tea.Batch(m.reload(), m.waitForFileChange())

	case ui.LogChangedMsg:
		if msg.Err == nil {
			m.services.RefreshHistory()
		}
		var cmd tea.Cmd
		m, cmd = m.broadcast(msg)
		return m, tea.Batch(cmd, m.loadStatus())

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		m.styles = m.themeProvider.Styles()

		m, _ = m.broadcast(ui.ThemeChangedMsg{
			ThemeName: m.themeProvider.CurrentName(),
			Styles:    m.styles,
		})
		return m, m.saveThemeConfig(m.themeProvider.CurrentName())
	}

	// Loaded messages are routed to every view; each ignores the others' types
	return m.broadcast(msg)
}

// broadcast forwards msg to every view
func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	var cmds [3]tea.Cmd
	m.logView, cmds[0] = m.logView.Update(msg)
	m.reportView, cmds[1] = m.reportView.Update(msg)
	m.configView, cmds[2] = m.configView.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabLog:
		b.WriteString(m.logView.View())
	case TabReport:
		b.WriteString(m.reportView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.StatusValue.Render(cli.FormatStatus(m.status)))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

// renderHeader renders "timelog: Monday, 2024-01-01 (week 01)" for the day on the log tab
func (m Model) renderHeader() string {
	return m.styles.Header.Render("timelog: " + cli.FormatDayHeader(m.logView.Date()))
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the key hints at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isCapturingKeys() {
		parts = append(parts, m.renderKeyHelp("Enter", "log"))
		parts = append(parts, m.renderKeyHelp("Tab", "complete"))
		parts = append(parts, m.renderKeyHelp("Esc", "done"))
		parts = append(parts, m.renderKeyHelp("ctrl+q", "quit"))
	} else {
		switch m.activeTab {
		case TabLog:
			parts = append(parts, m.renderKeyHelp("n", "log entry"))
			parts = append(parts, m.renderKeyHelp("←/→", "day"))
			parts = append(parts, m.renderKeyHelp("t", "today"))
		case TabReport:
			parts = append(parts, m.renderKeyHelp("←/→", "period"))
			parts = append(parts, m.renderKeyHelp("d", "day/week"))
			parts = append(parts, m.renderKeyHelp("↑/↓", "scroll"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-3", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - 4 - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// renderHelpOverlay renders the keyboard shortcuts for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-3    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q/ctrl+q   Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabLog:
		help.WriteString(m.styles.StatLabel.Render("Log:"))
		help.WriteString("\n")
		help.WriteString("  n          Log what you just finished\n")
		help.WriteString("  Tab        Complete from history\n")
		help.WriteString("  ←/→        Previous/next day\n")
		help.WriteString("  t          Today\n")
		help.WriteString("  r          Refresh\n")
	case TabReport:
		help.WriteString(m.styles.StatLabel.Render("Report:"))
		help.WriteString("\n")
		help.WriteString("  ←/→        Previous/next period\n")
		help.WriteString("  d          Toggle day/week\n")
		help.WriteString("  ↑/↓        Scroll\n")
		help.WriteString("  t          This week\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  →          Next theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatusHelp.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// isModalInputMode checks if the active view owns the keyboard
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabLog:
		return m.logView.IsInputMode()
	case TabConfig:
		return m.configView.IsSelecting()
	}
	return false
}

// isCapturingKeys checks if printable keys should go to the active view
func (m Model) isCapturingKeys() bool {
	return m.activeTab == TabLog && m.logView.IsInputMode()
}

// loadStatus creates a command to recompute the status line
func (m Model) loadStatus() tea.Cmd {
	logs := m.services.Log
	return func() tea.Msg {
		return statusMsg{status: logs.Status()}
	}
}

// reload creates a command that re-reads the log after an external change
func (m Model) reload() tea.Cmd {
	logs := m.services.Log
	return func() tea.Msg {
		changed, err := logs.Reload()
		if err != nil {
			return ui.LogChangedMsg{Err: err}
		}
		if !changed {
			return nil
		}
		return ui.LogChangedMsg{}
	}
}

// waitForFileChange blocks on the watcher until the log file changes
func (m Model) waitForFileChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// saveThemeConfig persists the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	configs := m.services.Config
	return func() tea.Msg {
		cfg := configs.Get()
		cfg.Theme = themeName
		return views.ConfigSavedMsg{Err: configs.Update(cfg)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return ui.TickMsg(t)
	})
}

// Run starts the TUI and blocks until the user quits
func Run(services *service.Services, watcher *watch.FileWatcher) error {
	p := tea.NewProgram(New(services, watcher), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
