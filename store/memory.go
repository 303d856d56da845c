package store

import (
	"context"
	"sync"
)

// Memory is an in-memory slot store. It backs tests and ephemeral runs, and
// can simulate write failures to exercise the engine's error paths.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte

	// FailWrites makes Set and RemoveMany return this error when non-nil.
	FailWrites error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

// Get returns the value stored under key, or ok=false if the slot is absent.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.slots[key] = cp
	return nil
}

// RemoveMany removes the given slots. Missing slots are not an error.
func (m *Memory) RemoveMany(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	for _, key := range keys {
		delete(m.slots, key)
	}
	return nil
}

// Len returns the number of stored slots.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots)
}
