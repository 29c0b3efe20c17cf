package store

import (
	"context"
	"sync"
)

// Storage is the durable backing for cart and wishlist state. Each store
// persists its full item list as one JSON value under a single key. The
// production adapter is Redis; tests substitute MemoryStorage.
type Storage interface {
	// Load returns the stored value for key and whether it exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save overwrites the value for key.
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes the key.
	Delete(ctx context.Context, key string) error
}

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
