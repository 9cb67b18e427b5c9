// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Holds live game sessions for the HTTP layer; nothing survives a restart.
//
// Characteristics:
//   - Values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Get on a missing ID returns ErrNotFound.

package store

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for live sessions.
type Store[T any] interface {
	// Save persists or updates a value under id.
	Save(ctx context.Context, id string, v T) error

	// Get retrieves a value by id or returns ErrNotFound.
	Get(ctx context.Context, id string) (T, error)

	// Len reports how many values are held.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory[T any] struct {
	mu    sync.RWMutex // guards items
	items map[string]T
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore[T any]() Store[T] {
	return &memory[T]{items: make(map[string]T)}
}

func (m *memory[T]) Save(ctx context.Context, id string, v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[id] = v
	return nil
}

func (m *memory[T]) Get(ctx context.Context, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	var zero T
	return zero, ErrNotFound
}

func (m *memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
