package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/config"
	"github.com/mamadbah2/resaletracker/internal/service/reporting"
	"github.com/mamadbah2/resaletracker/pkg/clients/notifier"
)

// Reporter produces the content of scheduled reports.
type Reporter interface {
	WeeklySummary(ctx context.Context, now time.Time) (string, error)
	ExportSold(ctx context.Context) (int, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.ReportingConfig
	reporter Reporter
	notifier notifier.Client
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance. notifier may be nil, in
// which case summaries are only logged.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, notify notifier.Client, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:     c,
		cfg:      cfg,
		reporter: reporter,
		notifier: notify,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the weekly job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runWeekly); err != nil {
		return fmt.Errorf("schedule weekly report %q: %w", s.cfg.CronSchedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runWeekly() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.SendWeeklyReport(ctx); err != nil {
		s.logger.Error("failed to send weekly report", zap.Error(err))
	}
	if _, err := s.ExportSold(ctx); err != nil && !errors.Is(err, reporting.ErrExportDisabled) {
		s.logger.Error("failed to export sold ledger", zap.Error(err))
	}
}

// SendWeeklyReport builds the summary for the current instant and delivers it.
func (s *Scheduler) SendWeeklyReport(ctx context.Context) error {
	s.logger.Info("generating weekly report")

	summary, err := s.reporter.WeeklySummary(ctx, s.now())
	if err != nil {
		return err
	}

	if s.notifier == nil {
		s.logger.Info("weekly report generated, no notifier configured", zap.String("summary", summary))
		return nil
	}

	if err := s.notifier.Send(ctx, summary); err != nil {
		return err
	}
	s.logger.Info("weekly report sent successfully")
	return nil
}

// ExportSold runs the spreadsheet export.
func (s *Scheduler) ExportSold(ctx context.Context) (int, error) {
	return s.reporter.ExportSold(ctx)
}
