package service

import (
	"io"
	"time"

	"github.com/xolan/timelog/internal/report"
	"github.com/xolan/timelog/internal/timelog"
)

// ReportService renders categorized reports for the log
type ReportService struct {
	logs *LogService
	opts report.Options
}

// NewReportService creates a new ReportService
func NewReportService(logs *LogService, opts report.Options) *ReportService {
	return &ReportService{
		logs: logs,
		opts: opts,
	}
}

// Options returns the report options built from the configuration
func (s *ReportService) Options() report.Options {
	return s.opts
}

func (s *ReportService) window(date time.Time, period Period) *timelog.Window {
	if period == PeriodDay {
		return s.logs.WindowForDay(date)
	}
	return s.logs.WindowForWeek(date)
}

// Reports returns the report renderer for the period containing date.
// opts overrides the configured options.
func (s *ReportService) Reports(date time.Time, period Period, opts report.Options) *report.Reports {
	return report.New(s.window(date, period), opts)
}

// Summary aggregates the period containing date
func (s *ReportService) Summary(date time.Time, period Period) report.Summary {
	return s.Reports(date, period, s.opts).Summary()
}

// Write renders the report for the period containing date in the given format.
func (s *ReportService) Write(out io.Writer, date time.Time, period Period, format report.Format, opts report.Options, header, footer string) error {
	r := s.Reports(date, period, opts)

	switch {
	case format != report.FormatText:
		return r.WriteSummary(out, format)
	case period == PeriodDay:
		return r.DailyReportCategorized(out, header, footer)
	default:
		return r.WeeklyReportCategorized(out, header, footer)
	}
}
