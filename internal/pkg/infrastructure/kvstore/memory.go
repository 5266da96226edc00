package kvstore

import (
	"context"
	"sync"
)

type memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() Store {
	return &memory{
		entries: map[string][]byte{},
	}
}

func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return append([]byte(nil), v...), nil
}

func (m *memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = append([]byte(nil), value...)
	return nil
}

func (m *memory) Close() error {
	return nil
}
