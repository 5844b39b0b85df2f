package store

import (
	"context"
	"sync"
)

// MemoryKV is a process-local KV backend. It backs tests and the
// "memory" store driver, where data lives only as long as the process.
type MemoryKV struct {
	mu    sync.RWMutex
	blobs map[Key]string
}

// NewMemoryKV returns an empty in-memory backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{blobs: make(map[Key]string)}
}

// Get returns the blob for key or ErrKeyNotFound.
func (m *MemoryKV) Get(_ context.Context, key Key) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.blobs[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return raw, nil
}

// Set stores the blob for key.
func (m *MemoryKV) Set(_ context.Context, key Key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
	return nil
}

// Delete removes the blob for key if present.
func (m *MemoryKV) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}
