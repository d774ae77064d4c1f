package reconcile

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hillandale/walksync/internal/models"
)

// WalkRepository defines the persistence contract for walk records.
type WalkRepository interface {
	// ListLive retrieves the walks expected to be live on the remote
	// platform: titled, with a start date inside the given horizon.
	ListLive(ctx context.Context, from, to time.Time) ([]models.Walk, error)

	// GetByID retrieves a walk by its ID. Returns nil when not found.
	GetByID(ctx context.Context, id string) (*models.Walk, error)

	// Update persists a modified walk.
	Update(ctx context.Context, walk models.Walk) error
}

// MemoryWalkRepository implements an in-memory walk repository for
// testing/development. Safe for the concurrent writes issued at the end of a
// reconciliation pass.
type MemoryWalkRepository struct {
	mu      sync.Mutex
	walks   map[string]models.Walk
	updates int
}

// NewMemoryWalkRepository creates a new in-memory walk repository.
func NewMemoryWalkRepository() *MemoryWalkRepository {
	return &MemoryWalkRepository{
		walks: make(map[string]models.Walk),
	}
}

// Store saves a walk.
func (r *MemoryWalkRepository) Store(ctx context.Context, walk models.Walk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.walks[walk.ID] = walk
	return nil
}

// ListLive retrieves titled walks starting within the horizon, ordered by
// start date ascending.
func (r *MemoryWalkRepository) ListLive(ctx context.Context, from, to time.Time) ([]models.Walk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Walk, 0, len(r.walks))
	for _, walk := range r.walks {
		if walk.Title == "" {
			continue
		}
		start, ok := walk.StartAt()
		if !ok || start.Before(from) || start.After(to) {
			continue
		}
		result = append(result, walk)
	}

	sort.Slice(result, func(i, j int) bool {
		si, _ := result[i].StartAt()
		sj, _ := result[j].StartAt()
		return si.Before(sj)
	})

	return result, nil
}

// GetByID retrieves a walk by ID.
func (r *MemoryWalkRepository) GetByID(ctx context.Context, id string) (*models.Walk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	walk, ok := r.walks[id]
	if !ok {
		return nil, nil
	}
	return &walk, nil
}

// Update modifies an existing walk.
func (r *MemoryWalkRepository) Update(ctx context.Context, walk models.Walk) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	walk.UpdatedAt = time.Now()
	r.walks[walk.ID] = walk
	r.updates++
	return nil
}

// Updates returns the number of Update calls executed.
func (r *MemoryWalkRepository) Updates() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}

// Size returns the number of walks in the repository.
func (r *MemoryWalkRepository) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.walks)
}
