package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"agency-hub/internal/pkg/config"
	"agency-hub/internal/service"
)

const overdueSweepJob = "invoice_overdue_sweep"

// sweepTimeout bounds one run of the overdue sweep
const sweepTimeout = 5 * time.Minute

// Scheduler background jobs
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	invoiceSvc    service.InvoiceService
	cronSchedules map[string]cron.EntryID
}

// NewScheduler creates a scheduler with second-level cron expressions
func NewScheduler(invoiceSvc service.InvoiceService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger,
		invoiceSvc:    invoiceSvc,
		cronSchedules: make(map[string]cron.EntryID),
	}
}

// Start registers the enabled jobs and starts the cron loop
func (s *Scheduler) Start(cfg *config.SchedulerConfig) error {
	log := s.logger.Sugar()

	if !cfg.OverdueSweep.Enabled {
		log.Info("overdue invoice sweep disabled")
		return nil
	}

	// sec min hour dom month dow
	cronExpr := cfg.OverdueSweep.Cron
	if cronExpr == "" {
		cronExpr = "0 0 1 * * *"
		log.Warnw("scheduler.overdue_sweep.cron not set, using default", "cron", cronExpr)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() {
		if _, err := s.SweepOverdue(); err != nil {
			log.Errorf("overdue invoice sweep failed: %v", err)
		}
	})
	if err != nil {
		log.Errorf("register overdue sweep %q failed: %v", cronExpr, err)
		return err
	}

	s.cronSchedules[overdueSweepJob] = entryID
	log.Infof("overdue invoice sweep registered: %s entry_id=%d", cronExpr, entryID)

	s.cron.Start()
	log.Info("scheduler started")

	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler...")

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("scheduler stopped")
}

// SweepOverdue runs the overdue sweep once
func (s *Scheduler) SweepOverdue() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	count, err := s.invoiceSvc.SweepOverdue(ctx)
	if err != nil {
		return 0, err
	}

	s.logger.Info("overdue invoice sweep finished", zap.Int("marked", count))
	return count, nil
}
