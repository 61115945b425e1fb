package store

import (
	"context"
	"sync"
)

// Memory is an in-process Client used by tests and dry runs.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Publish(_ context.Context, path, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[path] = value
	return nil
}

func (m *Memory) Lookup(_ context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[path]
	if !ok {
		return "", &NotFoundError{Path: path, Cause: ErrNotPublished}
	}
	return v, nil
}

func (m *Memory) Close() error { return nil }

// Len reports the number of published paths.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
