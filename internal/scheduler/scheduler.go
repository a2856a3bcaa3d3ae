package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/config"
	"github.com/sbdiallo/stockboard/internal/service/reporting"
)

// Scheduler runs the periodic inventory snapshot job.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.captureSnapshot); err != nil {
		s.logger.Error("failed to schedule snapshot job", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) captureSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot, err := s.reportingSvc.CaptureSnapshot(ctx)
	if err != nil {
		s.logger.Error("failed to capture inventory snapshot", zap.Error(err))
		return
	}

	summary, err := s.reportingSvc.LowStockSummary(ctx)
	if err != nil {
		s.logger.Warn("failed to build low stock summary", zap.Error(err))
		return
	}

	s.logger.Info("scheduled snapshot complete",
		zap.Time("date", snapshot.Date),
		zap.String("low_stock_summary", summary))
}
