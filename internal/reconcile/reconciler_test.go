package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"log/slog"

	"github.com/hillandale/walksync/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func newTestReconciler(repo WalkRepository) *Reconciler {
	return NewReconciler(repo, testLogger(), Config{})
}

func aprilWalk(id string, day int) models.Walk {
	return models.Walk{
		ID:        id,
		Title:     "Walk " + id,
		StartDate: fmt.Sprintf("2025-04-%02dT10:00", day),
	}
}

func linkedAprilWalk(id string, day int, remoteID, remoteURL string) models.Walk {
	w := aprilWalk(id, day)
	w.RemoteID = remoteID
	w.RemoteURL = remoteURL
	w.SetLink(models.LinkSourcePrimaryRemote, remoteURL, w.Title)
	return w
}

func summaryFor(id, url, startDate string) models.RemoteWalkSummary {
	return models.RemoteWalkSummary{ID: id, URL: url, StartDate: startDate, Title: "Remote " + id}
}

func TestReconcileLinksUnlinkedWalk(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walks := []models.Walk{aprilWalk("w1", 1)}
	summaries := []models.RemoteWalkSummary{
		summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025"),
	}
	for _, w := range walks {
		repo.Store(context.Background(), w)
	}

	result := newTestReconciler(repo).Reconcile(context.Background(), walks, summaries)

	if result.Matched != 1 {
		t.Fatalf("matched = %d, want 1", result.Matched)
	}
	if result.DriftUpdates != 1 {
		t.Errorf("drift updates = %d, want 1", result.DriftUpdates)
	}
	if result.Unlinks != 0 {
		t.Errorf("unlinks = %d, want 0", result.Unlinks)
	}

	stored, _ := repo.GetByID(context.Background(), "w1")
	if stored.RemoteID != "101" || stored.RemoteURL != "https://walks.example.org/walk/101" {
		t.Errorf("linkage = %q/%q", stored.RemoteID, stored.RemoteURL)
	}
	link := stored.LinkWithSource(models.LinkSourcePrimaryRemote)
	if link == nil || link.Href != stored.RemoteURL {
		t.Errorf("stored link %+v does not mirror remote url", link)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walks := []models.Walk{aprilWalk("w1", 1), aprilWalk("w2", 8)}
	summaries := []models.RemoteWalkSummary{
		summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025"),
		summaryFor("102", "https://walks.example.org/walk/102", "Tuesday, 8th April 2025"),
	}
	for _, w := range walks {
		repo.Store(context.Background(), w)
	}

	reconciler := newTestReconciler(repo)
	first := reconciler.Reconcile(context.Background(), walks, summaries)
	if first.Writes != 2 {
		t.Fatalf("first pass writes = %d, want 2", first.Writes)
	}

	// Second pass over the persisted state must be a no-op.
	current := []models.Walk{}
	for _, id := range []string{"w1", "w2"} {
		stored, _ := repo.GetByID(context.Background(), id)
		current = append(current, *stored)
	}

	second := reconciler.Reconcile(context.Background(), current, summaries)
	if second.Matched != 2 {
		t.Errorf("second pass matched = %d, want 2", second.Matched)
	}
	if second.Writes != 0 {
		t.Errorf("second pass writes = %d, want 0", second.Writes)
	}
	if repo.Updates() != 2 {
		t.Errorf("total updates = %d, want 2", repo.Updates())
	}
}

func TestReconcileRepairsDriftedLinkage(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walks := []models.Walk{linkedAprilWalk("w1", 1, "old-id", "https://walks.example.org/walk/old")}
	summaries := []models.RemoteWalkSummary{
		summaryFor("new-id", "https://walks.example.org/walk/new", "Tuesday, 1st April 2025"),
	}
	for _, w := range walks {
		repo.Store(context.Background(), w)
	}

	result := newTestReconciler(repo).Reconcile(context.Background(), walks, summaries)

	if result.DriftUpdates != 1 {
		t.Fatalf("drift updates = %d, want 1", result.DriftUpdates)
	}
	if result.Unlinks != 0 {
		t.Errorf("unlinks = %d, want 0 (relinked walks are not swept)", result.Unlinks)
	}

	stored, _ := repo.GetByID(context.Background(), "w1")
	if stored.RemoteID != "new-id" || stored.RemoteURL != "https://walks.example.org/walk/new" {
		t.Errorf("linkage = %q/%q", stored.RemoteID, stored.RemoteURL)
	}
	link := stored.LinkWithSource(models.LinkSourcePrimaryRemote)
	if link == nil || link.Href != "https://walks.example.org/walk/new" {
		t.Errorf("link = %+v", link)
	}
	if len(stored.Links) != 1 {
		t.Errorf("links = %d, want exactly one primary-remote link", len(stored.Links))
	}
}

func TestReconcileBackfillsMedia(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walks := []models.Walk{linkedAprilWalk("w1", 1, "101", "https://walks.example.org/walk/101")}
	summary := summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025")
	summary.Media = []models.Media{{URL: "https://walks.example.org/media/1.jpg"}}
	for _, w := range walks {
		repo.Store(context.Background(), w)
	}

	result := newTestReconciler(repo).Reconcile(context.Background(), walks, []models.RemoteWalkSummary{summary})

	if result.MediaBackfills != 1 {
		t.Fatalf("media backfills = %d, want 1", result.MediaBackfills)
	}
	if result.DriftUpdates != 0 {
		t.Errorf("drift updates = %d, want 0 (linkage already correct)", result.DriftUpdates)
	}

	stored, _ := repo.GetByID(context.Background(), "w1")
	if len(stored.Media) != 1 || stored.Media[0].URL != "https://walks.example.org/media/1.jpg" {
		t.Errorf("media = %+v", stored.Media)
	}
}

func TestReconcileDoesNotOverwriteLocalMedia(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walk := linkedAprilWalk("w1", 1, "101", "https://walks.example.org/walk/101")
	walk.Media = []models.Media{{URL: "https://local.example.org/photo.jpg"}}
	summary := summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025")
	summary.Media = []models.Media{{URL: "https://walks.example.org/media/1.jpg"}}
	repo.Store(context.Background(), walk)

	result := newTestReconciler(repo).Reconcile(context.Background(), []models.Walk{walk}, []models.RemoteWalkSummary{summary})

	if result.MediaBackfills != 0 {
		t.Errorf("media backfills = %d, want 0", result.MediaBackfills)
	}
	if result.Writes != 0 {
		t.Errorf("writes = %d, want 0", result.Writes)
	}
}

func TestReconcileUnlinksVanishedRemote(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walks := []models.Walk{linkedAprilWalk("w1", 1, "101", "https://walks.example.org/walk/101")}
	for _, w := range walks {
		repo.Store(context.Background(), w)
	}

	result := newTestReconciler(repo).Reconcile(context.Background(), walks, nil)

	if result.Unlinks != 1 {
		t.Fatalf("unlinks = %d, want 1", result.Unlinks)
	}

	stored, _ := repo.GetByID(context.Background(), "w1")
	if stored.RemoteID != "" || stored.RemoteURL != "" {
		t.Errorf("linkage = %q/%q, want cleared", stored.RemoteID, stored.RemoteURL)
	}
	if stored.LinkWithSource(models.LinkSourcePrimaryRemote) != nil {
		t.Error("primary-remote link should be removed")
	}
}

func TestReconcileFirstMatchWins(t *testing.T) {
	repo := NewMemoryWalkRepository()
	// Two walks on the same day: only the first in iteration order matches.
	walks := []models.Walk{aprilWalk("w1", 1), aprilWalk("w2", 1)}
	summaries := []models.RemoteWalkSummary{
		summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025"),
	}
	for _, w := range walks {
		repo.Store(context.Background(), w)
	}

	result := newTestReconciler(repo).Reconcile(context.Background(), walks, summaries)

	if result.Matched != 1 {
		t.Fatalf("matched = %d, want 1", result.Matched)
	}
	if result.Pairings[0].Remote == nil {
		t.Error("first walk should hold the match")
	}
	if result.Pairings[1].Remote != nil {
		t.Error("second walk must stay unmatched")
	}
}

func TestReconcileSecondSummarySameDayMatchesSecondWalk(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walks := []models.Walk{aprilWalk("w1", 1), aprilWalk("w2", 1)}
	summaries := []models.RemoteWalkSummary{
		summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025"),
		summaryFor("102", "https://walks.example.org/walk/102", "Tuesday, 1st April 2025"),
	}
	for _, w := range walks {
		repo.Store(context.Background(), w)
	}

	result := newTestReconciler(repo).Reconcile(context.Background(), walks, summaries)

	if result.Matched != 2 {
		t.Fatalf("matched = %d, want 2", result.Matched)
	}
	if result.Pairings[0].Remote.ID != "101" || result.Pairings[1].Remote.ID != "102" {
		t.Errorf("pairings hold %v and %v", result.Pairings[0].Remote, result.Pairings[1].Remote)
	}
}

func TestReconcileSkipsUnparsableStartDates(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walk := models.Walk{ID: "w1", Title: "Mystery", StartDate: "sometime in spring"}
	summaries := []models.RemoteWalkSummary{
		summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025"),
	}
	repo.Store(context.Background(), walk)

	result := newTestReconciler(repo).Reconcile(context.Background(), []models.Walk{walk}, summaries)

	if result.Matched != 0 {
		t.Errorf("matched = %d, want 0", result.Matched)
	}
	if result.Writes != 0 {
		t.Errorf("writes = %d, want 0", result.Writes)
	}
}

func TestReconcileDryRunWritesNothing(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walks := []models.Walk{aprilWalk("w1", 1)}
	summaries := []models.RemoteWalkSummary{
		summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025"),
	}
	for _, w := range walks {
		repo.Store(context.Background(), w)
	}

	reconciler := NewReconciler(repo, testLogger(), Config{DryRun: true})
	result := reconciler.Reconcile(context.Background(), walks, summaries)

	if result.DriftUpdates != 1 {
		t.Errorf("drift updates = %d, want 1 (matching still runs)", result.DriftUpdates)
	}
	if repo.Updates() != 0 {
		t.Errorf("updates = %d, want 0 in dry run", repo.Updates())
	}
	if result.Writes != 0 {
		t.Errorf("writes = %d, want 0 when nothing is persisted", result.Writes)
	}

	stored, _ := repo.GetByID(context.Background(), "w1")
	if stored.RemoteID != "" {
		t.Errorf("stored walk mutated in dry run: %q", stored.RemoteID)
	}
}

// failingRepo wraps the memory repository and fails updates for one walk.
type failingRepo struct {
	*MemoryWalkRepository
	failID string
}

func (r *failingRepo) Update(ctx context.Context, walk models.Walk) error {
	if walk.ID == r.failID {
		return errors.New("connection reset")
	}
	return r.MemoryWalkRepository.Update(ctx, walk)
}

func TestReconcileCollectsPerWalkFailures(t *testing.T) {
	repo := &failingRepo{MemoryWalkRepository: NewMemoryWalkRepository(), failID: "w1"}
	walks := []models.Walk{aprilWalk("w1", 1), aprilWalk("w2", 8)}
	summaries := []models.RemoteWalkSummary{
		summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025"),
		summaryFor("102", "https://walks.example.org/walk/102", "Tuesday, 8th April 2025"),
	}
	for _, w := range walks {
		repo.Store(context.Background(), w)
	}

	result := newTestReconciler(repo).Reconcile(context.Background(), walks, summaries)

	if len(result.Failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(result.Failures))
	}
	var perr *PersistenceError
	if !errors.As(result.Failures[0], &perr) || perr.WalkID != "w1" {
		t.Errorf("failure = %v", result.Failures[0])
	}

	// The other walk's write still landed.
	stored, _ := repo.GetByID(context.Background(), "w2")
	if stored.RemoteID != "102" {
		t.Errorf("w2 linkage = %q, want 102", stored.RemoteID)
	}
}

func TestReconcilePairingsCoverEveryWalk(t *testing.T) {
	repo := NewMemoryWalkRepository()
	walks := []models.Walk{aprilWalk("w1", 1), aprilWalk("w2", 15)}
	summaries := []models.RemoteWalkSummary{
		summaryFor("101", "https://walks.example.org/walk/101", "Tuesday, 1st April 2025"),
	}

	result := newTestReconciler(repo).Reconcile(context.Background(), walks, summaries)

	if len(result.Pairings) != 2 {
		t.Fatalf("pairings = %d, want 2", len(result.Pairings))
	}
	if result.Pairings[0].Remote == nil {
		t.Error("matched walk missing its remote")
	}
	if result.Pairings[1].Remote != nil {
		t.Error("unmatched walk should pair with nil remote")
	}
}
