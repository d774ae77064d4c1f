package reconcile

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hillandale/walksync/internal/models"
	"github.com/hillandale/walksync/internal/remote"
)

// Config holds reconciliation settings. Immutable after construction: a dry
// run reconciler stays a dry run reconciler.
type Config struct {
	// DryRun performs the full matching pass but logs intended persistence
	// writes instead of executing them.
	DryRun bool
}

// Reconciler pairs local walks with remote summaries by formatted start
// date, repairs linkage drift and backfills media, then persists the
// queued changes.
type Reconciler struct {
	repo   WalkRepository
	logger *slog.Logger
	cfg    Config
}

// NewReconciler creates a reconciler over the given repository.
func NewReconciler(repo WalkRepository, logger *slog.Logger, cfg Config) *Reconciler {
	return &Reconciler{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
	}
}

// Pairing associates one walk with its matched remote summary, if any.
type Pairing struct {
	Walk   *models.Walk
	Remote *models.RemoteWalkSummary
}

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Pairings covers every input walk, matched or not. Walks whose
	// persistence write failed still reflect their intended new state.
	Pairings []Pairing

	Matched        int
	DriftUpdates   int
	MediaBackfills int
	Unlinks        int
	// Writes counts records actually persisted. Always zero in dry run.
	Writes int

	// Failures collects per-walk persistence errors. They never abort
	// processing of other walks.
	Failures []error
}

// Reconcile runs one full pass over the given walks and remote summaries.
// The matching phase is single-threaded and deterministic; the queued
// persistence writes are issued concurrently and awaited before returning.
// Running the pass twice against unchanged remote data produces zero
// additional writes.
func (r *Reconciler) Reconcile(ctx context.Context, walks []models.Walk, summaries []models.RemoteWalkSummary) Result {
	result := Result{}

	// The remote summary matched to each walk, by index.
	matchedSummary := make([]*models.RemoteWalkSummary, len(walks))
	matched := make([]bool, len(walks))

	// Every currently referenced remote url is a candidate for removal
	// until a summary claims it.
	unreferenced := make(map[string]*models.Walk)
	for i := range walks {
		if href := primaryRemoteHref(&walks[i]); href != "" {
			unreferenced[href] = &walks[i]
		}
	}

	// Walks eligible for writes, deduplicated by id.
	queued := make(map[string]*models.Walk)
	queue := func(w *models.Walk) {
		if _, ok := queued[w.ID]; !ok {
			queued[w.ID] = w
		}
	}

	for si := range summaries {
		summary := &summaries[si]

		wi, ok := r.matchByDate(walks, matched, summary)
		if !ok {
			r.logger.Debug("no local walk for remote summary",
				"remote_id", summary.ID,
				"remote_date", summary.StartDate,
			)
			continue
		}
		walk := &walks[wi]
		matchedSummary[wi] = summary
		result.Matched++

		delete(unreferenced, summary.URL)

		if r.applyIdentityDrift(walk, summary) {
			result.DriftUpdates++
			queue(walk)
		}

		if r.applyMediaBackfill(walk, summary) {
			result.MediaBackfills++
			queue(walk)
		}
	}

	// Whatever urls remain are no longer present remotely: stop claiming
	// them locally.
	for href, walk := range unreferenced {
		if walk.RemoteURL != href || walk.RemoteID == "" {
			continue
		}
		r.logger.Info("remote walk gone, clearing local linkage",
			"walk_id", walk.ID,
			"remote_url", href,
		)
		walk.RemoteID = ""
		walk.RemoteURL = ""
		walk.ClearLink(models.LinkSourcePrimaryRemote)
		result.Unlinks++
		queue(walk)
	}

	result.Failures = r.flush(ctx, queued)
	if !r.cfg.DryRun {
		result.Writes = len(queued)
	}

	result.Pairings = make([]Pairing, 0, len(walks))
	for i := range walks {
		result.Pairings = append(result.Pairings, Pairing{
			Walk:   &walks[i],
			Remote: matchedSummary[i],
		})
	}

	return result
}

// matchByDate finds the first unmatched walk whose start timestamp formats
// to the summary's date string. First match in iteration order wins; a
// formatted-date collision is a known limitation, not an error.
func (r *Reconciler) matchByDate(walks []models.Walk, matched []bool, summary *models.RemoteWalkSummary) (int, bool) {
	for i := range walks {
		if matched[i] {
			continue
		}
		start, ok := walks[i].StartAt()
		if !ok {
			continue
		}
		if remote.WalkDate(start) == summary.StartDate {
			matched[i] = true
			return i, true
		}
	}
	return 0, false
}

// applyIdentityDrift updates the walk's primary-remote linkage when any of
// its id, url or stored link href differ from the summary. The id and url
// are always written together.
func (r *Reconciler) applyIdentityDrift(walk *models.Walk, summary *models.RemoteWalkSummary) bool {
	link := walk.LinkWithSource(models.LinkSourcePrimaryRemote)
	linkHref := ""
	if link != nil {
		linkHref = link.Href
	}

	if walk.RemoteID == summary.ID && walk.RemoteURL == summary.URL && linkHref == summary.URL {
		return false
	}

	r.logger.Info("remote linkage drift detected",
		"walk_id", walk.ID,
		"remote_id", summary.ID,
		"remote_url", summary.URL,
	)

	walk.RemoteID = summary.ID
	walk.RemoteURL = summary.URL
	walk.SetLink(models.LinkSourcePrimaryRemote, summary.URL, summary.Title)
	return true
}

// applyMediaBackfill copies the summary's media onto the walk when the walk
// has none. Independent of the drift check: it can fire on its own.
func (r *Reconciler) applyMediaBackfill(walk *models.Walk, summary *models.RemoteWalkSummary) bool {
	if len(summary.Media) == 0 || len(walk.Media) > 0 {
		return false
	}

	r.logger.Info("backfilling media from remote walk",
		"walk_id", walk.ID,
		"media_count", len(summary.Media),
	)

	walk.Media = append([]models.Media(nil), summary.Media...)
	return true
}

// flush issues the queued writes concurrently and waits for them all. Each
// failure is collected per walk; one failing record never aborts the rest.
func (r *Reconciler) flush(ctx context.Context, queued map[string]*models.Walk) []error {
	if len(queued) == 0 {
		return nil
	}

	if r.cfg.DryRun {
		for id, walk := range queued {
			r.logger.Info("dry run: skipping persistence write",
				"walk_id", id,
				"remote_id", walk.RemoteID,
				"remote_url", walk.RemoteURL,
			)
		}
		return nil
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(queued))

	for _, walk := range queued {
		wg.Add(1)

		go func(w models.Walk) {
			defer wg.Done()

			if err := r.repo.Update(ctx, w); err != nil {
				r.logger.Error("reconciliation write failed",
					"walk_id", w.ID,
					"error", err,
				)
				errCh <- &PersistenceError{WalkID: w.ID, Err: err}
			}
		}(*walk)
	}

	wg.Wait()
	close(errCh)

	var failures []error
	for err := range errCh {
		failures = append(failures, err)
	}

	return failures
}

// primaryRemoteHref returns the walk's primary-remote link href, falling
// back to the stored remote url.
func primaryRemoteHref(walk *models.Walk) string {
	if link := walk.LinkWithSource(models.LinkSourcePrimaryRemote); link != nil && link.Href != "" {
		return link.Href
	}
	return walk.RemoteURL
}
