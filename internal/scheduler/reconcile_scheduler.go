package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/hillandale/walksync/internal/reconcile"
)

// ReconcileScheduler runs the reconciliation service on a fixed interval.
type ReconcileScheduler struct {
	service       *reconcile.Service
	logger        *slog.Logger
	stopChan      chan struct{}
	checkInterval time.Duration
}

// NewReconcileScheduler creates a new reconcile scheduler
func NewReconcileScheduler(service *reconcile.Service, interval time.Duration, logger *slog.Logger) *ReconcileScheduler {
	return &ReconcileScheduler{
		service:       service,
		logger:        logger,
		stopChan:      make(chan struct{}),
		checkInterval: interval,
	}
}

// Start begins the scheduler loop
func (s *ReconcileScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting reconcile scheduler", "check_interval", s.checkInterval)
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	// Run once immediately on start
	s.runOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.stopChan:
			s.logger.Info("Reconcile scheduler stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Reconcile scheduler stopping due to context cancellation")
			return
		}
	}
}

// Stop stops the scheduler
func (s *ReconcileScheduler) Stop() {
	close(s.stopChan)
}

func (s *ReconcileScheduler) runOnce(ctx context.Context) {
	result, err := s.service.Run(ctx)
	if err != nil {
		s.logger.Error("Scheduled reconciliation failed", "error", err)
		return
	}

	s.logger.Info("Scheduled reconciliation complete",
		"matched", result.Matched,
		"drift_updates", result.DriftUpdates,
		"media_backfills", result.MediaBackfills,
		"unlinks", result.Unlinks,
		"writes", result.Writes,
		"failures", len(result.Failures),
	)
}
