package repository

import (
	"context"
	"sync"
	"time"
)

// MockCache is an in-process cache used in tests and when no redis address
// is configured. TTLs are honored lazily on read.
type MockCache struct {
	mu   sync.Mutex
	data map[string]mockEntry
}

type mockEntry struct {
	value   string
	expires time.Time
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]mockEntry),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		delete(m.data, key)
		return "", false
	}
	return entry.value, true
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := mockEntry{value: value}
	if ttl > 0 {
		entry.expires = time.Now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}
