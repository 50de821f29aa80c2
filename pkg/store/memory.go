package store

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/mindtower/pkg/graph"
)

// MemoryRepository keeps mind maps in memory. Stored maps are copied on the
// way in and out, so callers never share state with the repository.
type MemoryRepository struct {
	mu   sync.RWMutex
	maps map[string]*graph.MindMap
	now  func() time.Time
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{maps: make(map[string]*graph.MindMap), now: time.Now}
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*graph.MindMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.maps[id]
	if !ok {
		return nil, notFound(id)
	}
	return clone(m), nil
}

func (r *MemoryRepository) Put(_ context.Context, m *graph.MindMap) error {
	if m == nil {
		return Prepare(m, r.now())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.maps[m.ID]; ok && m.CreatedAt.IsZero() {
		m.CreatedAt = old.CreatedAt
	}
	if err := Prepare(m, r.now()); err != nil {
		return err
	}
	r.maps[m.ID] = clone(m)
	return nil
}

func (r *MemoryRepository) List(_ context.Context, userID string, limit int) ([]*graph.MindMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*graph.MindMap
	for _, m := range r.maps {
		if userID == "" || m.UserID == userID {
			out = append(out, clone(m))
		}
	}
	return newest(out, limit), nil
}

var _ Repository = (*MemoryRepository)(nil)
