package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hillandale/walksync/internal/metrics"
	"github.com/hillandale/walksync/internal/models"
	"github.com/hillandale/walksync/internal/remote"
)

// Service runs full reconciliation passes: it queries the remote platform,
// loads the matching local horizon and hands both to the reconciler.
type Service struct {
	client     remote.Client
	repo       WalkRepository
	reconciler *Reconciler
	evaluator  *Evaluator
	collector  *metrics.Collector
	logger     *slog.Logger
	itemType   string
	now        func() time.Time
}

// NewService wires a reconciliation service. The collector may be nil.
func NewService(
	client remote.Client,
	repo WalkRepository,
	reconciler *Reconciler,
	evaluator *Evaluator,
	collector *metrics.Collector,
	logger *slog.Logger,
) *Service {
	return &Service{
		client:     client,
		repo:       repo,
		reconciler: reconciler,
		evaluator:  evaluator,
		collector:  collector,
		logger:     logger,
		itemType:   "group-walk",
		now:        time.Now,
	}
}

// Evaluation pairs one walk with its remote match and publish verdict.
type Evaluation struct {
	Walk   *models.Walk              `json:"walk"`
	Remote *models.RemoteWalkSummary `json:"remote,omitempty"`
	Status models.PublishStatus      `json:"status"`
}

// Run executes one reconciliation pass. A failed listing call aborts the
// pass before any local mutation; individual persistence failures do not.
func (s *Service) Run(ctx context.Context) (Result, error) {
	start := s.now()

	summaries, err := s.client.ListSummaries(ctx, models.RemoteQuery{ItemType: s.itemType})
	if err != nil {
		return Result{}, fmt.Errorf("list remote walks: %w", err)
	}

	from, to := remote.DefaultDateRange(start)
	walks, err := s.repo.ListLive(ctx, from, to)
	if err != nil {
		return Result{}, fmt.Errorf("list local walks: %w", err)
	}

	s.logger.Info("starting reconciliation pass",
		"local_walks", len(walks),
		"remote_summaries", len(summaries),
	)

	result := s.reconciler.Reconcile(ctx, walks, summaries)

	duration := s.now().Sub(start)
	if s.collector != nil {
		s.collector.ObserveReconcilePass(duration,
			result.Matched, result.DriftUpdates, result.MediaBackfills, result.Unlinks, len(result.Failures))
	}

	s.logger.Info("reconciliation pass complete",
		"matched", result.Matched,
		"drift_updates", result.DriftUpdates,
		"media_backfills", result.MediaBackfills,
		"unlinks", result.Unlinks,
		"writes", result.Writes,
		"failures", len(result.Failures),
		"duration", duration,
	)

	return result, nil
}

// Evaluate runs a pass and attaches a publish-status verdict to every
// pairing.
func (s *Service) Evaluate(ctx context.Context) ([]Evaluation, error) {
	result, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}

	evaluations := make([]Evaluation, 0, len(result.Pairings))
	for _, pairing := range result.Pairings {
		evaluations = append(evaluations, Evaluation{
			Walk:   pairing.Walk,
			Remote: pairing.Remote,
			Status: s.evaluator.Evaluate(pairing.Walk, pairing.Remote),
		})
	}

	return evaluations, nil
}
