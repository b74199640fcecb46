package cart

import (
	"sync"

	"github.com/google/uuid"
)

// StorageFactory builds the persistence backend for one session's cart.
type StorageFactory func(sessionID string) Storage

// Manager owns one Store per session. Stores are created on first access and
// live for the process lifetime; their persisted state outlives restarts.
//
// Two clients presenting the same session id race as last-write-wins on the
// persisted cart; there is no merge or conflict detection.
type Manager struct {
	mu      sync.RWMutex
	stores  map[string]*Store
	factory StorageFactory
}

func NewManager(factory StorageFactory) *Manager {
	if factory == nil {
		factory = func(string) Storage { return NewMemoryStorage() }
	}
	return &Manager{
		stores:  make(map[string]*Store),
		factory: factory,
	}
}

// NewSessionID mints an opaque id for the session cookie.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Get returns the session's store, rehydrating or creating it as needed.
func (m *Manager) Get(sessionID string) *Store {
	m.mu.RLock()
	store, ok := m.stores[sessionID]
	m.mu.RUnlock()
	if ok {
		return store
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	store = NewStore(m.factory(sessionID))
	m.stores[sessionID] = store
	return store
}

// Drop forgets the in-memory store for a session. The persisted state, if
// any, stays behind for the next rehydration.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}
