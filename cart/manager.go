package cart

import (
	"context"
	"sync"
)

// Manager hands out one Store per owner key, rehydrating each from its
// slot the first time it is requested in this process. It serializes the
// creation path only; each Store serializes its own operations.
type Manager struct {
	mu        sync.Mutex
	persister Persister
	stores    map[string]*Store
}

// NewManager creates a manager over the given persistence slot backend.
func NewManager(p Persister) *Manager {
	return &Manager{
		persister: p,
		stores:    make(map[string]*Store),
	}
}

// For returns the store for owner, opening it on first use.
func (m *Manager) For(ctx context.Context, owner string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[owner]; ok {
		return s
	}
	s := Open(ctx, m.persister, owner)
	m.stores[owner] = s
	return s
}

// Dispose closes every open store and forgets them. Slots are untouched.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for owner, s := range m.stores {
		s.Close()
		delete(m.stores, owner)
	}
}
