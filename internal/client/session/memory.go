package session

import (
	"context"
	"sync"
)

// MemoryStore keeps the session for the lifetime of the process, the
// terminal counterpart of a browser tab's session storage.
type MemoryStore struct {
	mu sync.RWMutex
	s  Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s, nil
}

func (m *MemoryStore) Set(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *MemoryStore) Remove(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = Session{}
	return nil
}
