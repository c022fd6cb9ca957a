package service

import (
	"log/slog"

	"github.com/xolan/timelog/internal/config"
	"github.com/xolan/timelog/internal/history"
	"github.com/xolan/timelog/internal/report"
	"github.com/xolan/timelog/internal/timelog"
)

// Services holds all service instances used by the application
type Services struct {
	Log     *LogService
	Report  *ReportService
	Config  *ConfigService
	History *history.Set
}

// NewServices wires the services around one loaded time log.
// The history is seeded with the texts already in the log.
func NewServices(tl *timelog.TimeLog, configPath string, cfg config.Config, logger *slog.Logger) *Services {
	if logger == nil {
		logger = slog.Default()
	}

	logService := NewLogService(tl, cfg.DailyTarget(), logger)

	services := &Services{
		Log: logService,
		Report: NewReportService(logService, report.Options{
			EmailHeaders: cfg.EmailHeaders,
			Name:         cfg.Name,
			Sender:       cfg.Sender,
			Recipient:    cfg.Recipient,
		}),
		Config:  NewConfigService(configPath, cfg),
		History: history.New(cfg.HistorySize),
	}
	services.RefreshHistory()
	return services
}

// RefreshHistory re-seeds the history from the texts in the log.
func (s *Services) RefreshHistory() {
	s.History.Replace(s.Log.Texts())
}
