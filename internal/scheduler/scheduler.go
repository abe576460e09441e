// Package scheduler runs the portal's recurring jobs: the nightly ledger
// export and the overdue-invoice scan.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/config"
	"github.com/lindqvistmarin/slipway/internal/domain/models"
	"github.com/lindqvistmarin/slipway/internal/service/billing"
	"github.com/lindqvistmarin/slipway/internal/service/export"
	"github.com/lindqvistmarin/slipway/pkg/clients/notify"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	cfg        config.JobsConfig
	exportSvc  *export.Service
	billingSvc *billing.Service
	notifier   notify.Client
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance. The export service and
// notifier may be nil when their subsystems are unconfigured; the matching
// jobs are simply not registered.
func NewScheduler(cfg config.JobsConfig, exportSvc *export.Service, billingSvc *billing.Service, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("unknown timezone, scheduling in server local time", zap.String("timezone", cfg.Timezone))
	}

	return &Scheduler{
		cron:       cron.New(opts...),
		cfg:        cfg,
		exportSvc:  exportSvc,
		billingSvc: billingSvc,
		notifier:   notifier,
		logger:     logger,
	}
}

// Start registers and starts the jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if s.exportSvc != nil {
		if _, err := s.cron.AddFunc(s.cfg.ExportSchedule, s.runLedgerExport); err != nil {
			s.logger.Error("failed to schedule ledger export", zap.Error(err))
		}
	}

	if s.notifier != nil {
		if _, err := s.cron.AddFunc(s.cfg.OverdueSchedule, s.runOverdueScan); err != nil {
			s.logger.Error("failed to schedule overdue scan", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runLedgerExport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Export yesterday so the day being exported is complete.
	yesterday := time.Now().AddDate(0, 0, -1)
	if err := s.exportSvc.ExportDay(ctx, yesterday); err != nil {
		s.logger.Error("ledger export failed", zap.Error(err))
	}
}

func (s *Scheduler) runOverdueScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	overdue, err := s.billingSvc.Overdue(ctx)
	if err != nil {
		s.logger.Error("overdue scan failed", zap.Error(err))
		return
	}

	for _, invoice := range overdue {
		event := notify.Event{
			Event:     notify.EventInvoiceOverdue,
			BoatID:    invoice.BoatID.Hex(),
			Reference: invoice.Reference,
			Message:   overdueMessage(invoice),
			At:        time.Now().UTC(),
		}
		if err := s.notifier.Post(ctx, event); err != nil {
			s.logger.Error("failed to send overdue notification",
				zap.String("reference", invoice.Reference), zap.Error(err))
		}
	}

	s.logger.Info("overdue scan finished", zap.Int("invoices", len(overdue)))
}

func overdueMessage(invoice models.Invoice) string {
	due := "unknown due date"
	if invoice.DueAt != nil {
		due = invoice.DueAt.Format("2006-01-02")
	}
	return fmt.Sprintf("invoice %s (%.2f) overdue since %s", invoice.Reference, invoice.TotalAmount, due)
}
