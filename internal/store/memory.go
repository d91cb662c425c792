package store

import (
	"sync"

	"cudays/internal/schedule"
)

// MemoryStore is an in-memory implementation of schedule.RecordStore.
// It is useful for tests and throwaway runs. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]string

	// FailSet, when non-nil, is returned by every Set call. Tests use it
	// to exercise persistence failure paths.
	FailSet error
}

var _ schedule.RecordStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]string)}
}

// Get returns a copy of the value array for key, nil if absent.
func (m *MemoryStore) Get(key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	values, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), values...), nil
}

// Set replaces the value array for key.
func (m *MemoryStore) Set(key string, values []string) error {
	if m.FailSet != nil {
		return m.FailSet
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]string(nil), values...)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
