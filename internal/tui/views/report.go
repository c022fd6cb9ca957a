package views

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/timelog/internal/cli"
	"github.com/xolan/timelog/internal/report"
	"github.com/xolan/timelog/internal/service"
	"github.com/xolan/timelog/internal/tui/ui"
)

// ReportModel shows the categorized report of a week or a day
type ReportModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width    int
	height   int
	date     time.Time
	period   service.Period
	summary  report.Summary
	viewport viewport.Model
	loaded   bool
	err      error
}

// NewReportModel creates a new report view model for the current week
func NewReportModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) ReportModel {
	return ReportModel{
		services: services,
		styles:   styles,
		keys:     keys,
		date:     services.Log.Today(),
		period:   service.PeriodWeek,
		viewport: viewport.New(80, 20),
	}
}

// reportLoadedMsg is sent when a report is rendered
type reportLoadedMsg struct {
	date    time.Time
	period  service.Period
	summary report.Summary
	text    string
	err     error
}

// Init implements tea.Model
func (m ReportModel) Init() tea.Cmd {
	return m.loadReport()
}

// Update implements tea.Model
func (m ReportModel) Update(msg tea.Msg) (ReportModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.date = m.step(-1)
			return m, m.loadReport()
		case key.Matches(msg, m.keys.Right):
			m.date = m.step(1)
			return m, m.loadReport()
		case key.Matches(msg, m.keys.Today):
			m.date = m.services.Log.Today()
			return m, m.loadReport()
		case key.Matches(msg, m.keys.TogglePeriod):
			if m.period == service.PeriodWeek {
				m.period = service.PeriodDay
			} else {
				m.period = service.PeriodWeek
			}
			return m, m.loadReport()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadReport()
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case reportLoadedMsg:
		if !msg.date.Equal(m.date) || msg.period != m.period {
			return m, nil
		}
		m.loaded = true
		m.err = msg.err
		m.summary = msg.summary
		m.viewport.SetContent(msg.text)
		return m, nil

	case ui.LogChangedMsg, ui.TickMsg:
		return m, m.loadReport()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// step moves date by n periods
func (m ReportModel) step(n int) time.Time {
	if m.period == service.PeriodDay {
		return m.date.AddDate(0, 0, n)
	}
	return m.date.AddDate(0, 0, 7*n)
}

// View implements tea.Model
func (m ReportModel) View() string {
	var b strings.Builder

	title := "Weekly report"
	if m.period == service.PeriodDay {
		title = "Daily report"
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if !m.loaded {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	b.WriteString(renderStatLine(m.styles, "Period:", cli.FormatDateRangeForDisplay(m.summary.Start, m.summary.End.AddDate(0, 0, -1))))
	b.WriteString(renderStatLine(m.styles, "Work:", report.FormatDuration(m.summary.Work)))
	b.WriteString(renderStatLine(m.styles, "Slacking:", report.FormatDuration(m.summary.Slacking)))
	b.WriteString(renderStatLine(m.styles, "Categories:", fmt.Sprintf("%d", len(m.summary.Categories))))
	b.WriteString(rule(m.width))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())

	return b.String()
}

// SetSize sets the view dimensions
func (m *ReportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	// Title, four stat lines and the rule
	m.viewport.Height = max(height-7, 3)
}

// loadReport creates a command to render the report for the shown period
func (m ReportModel) loadReport() tea.Cmd {
	date, period := m.date, m.period
	reports := m.services.Report
	return func() tea.Msg {
		opts := reports.Options()
		opts.EmailHeaders = false

		var buf bytes.Buffer
		err := reports.Write(&buf, date, period, report.FormatText, opts, "", "")
		return reportLoadedMsg{
			date:    date,
			period:  period,
			summary: reports.Summary(date, period),
			text:    buf.String(),
			err:     err,
		}
	}
}
