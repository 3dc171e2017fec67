package db

import (
	"slices"
	"sync"
)

// Memory keeps values in a map. Nothing survives the process.
type Memory struct {
	mu   sync.Mutex
	data map[string]string

	// SaveErr, when set, is returned by every Save and nothing is written.
	SaveErr error
}

// NewMemory creates an empty Memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Load returns the value stored under key
func (m *Memory) Load(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Save writes value under key
func (m *Memory) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data[key] = value
	return nil
}

// Keys returns every stored key in order
func (m *Memory) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close is a no-op
func (m *Memory) Close() error { return nil }
