package game

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps sessions in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(s), nil
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = cloneSession(s)
	return nil
}

func (m *MemoryStore) List(_ context.Context, f Filter) ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Session
	for _, s := range m.sessions {
		if f.match(s) {
			out = append(out, cloneSession(s))
		}
	}
	return newestFirst(out, f.limit()), nil
}

// newestFirst sorts sessions by creation time descending, ties broken by ID
// for a stable order, and truncates to limit.
func newestFirst(sessions []*Session, limit int) []*Session {
	sort.Slice(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions
}

var _ Store = (*MemoryStore)(nil)
