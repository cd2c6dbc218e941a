package memory

import (
	"sync"

	"github.com/jtcarver/hoopsight/internal/models"
)

// Repository caches computed snapshots keyed by split, so repeated requests
// for the same split within the cache window don't refetch the league.
type Repository struct {
	snapshots map[string]*models.StatsSnapshot
	mu        sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{snapshots: make(map[string]*models.StatsSnapshot)}
}

func (r *Repository) SaveSnapshot(key string, snapshot *models.StatsSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[key] = snapshot
}

func (r *Repository) GetSnapshot(key string) *models.StatsSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshots[key]
}
