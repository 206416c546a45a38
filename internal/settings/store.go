package settings

import "sync"

// Store is a persistent key-value store for settings.
type Store interface {
	// Get returns the stored value for key, or false if it is unset.
	Get(key string) (any, bool)
	// Set stores value under key.
	Set(key string, value any) error
	// Unset removes key so reads fall back to the default.
	Unset(key string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemoryStore returns a MemoryStore seeded with values.
func NewMemoryStore(values map[string]any) *MemoryStore {
	m := make(map[string]any, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &MemoryStore{values: m}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements Store.
func (m *MemoryStore) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Unset implements Store.
func (m *MemoryStore) Unset(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
