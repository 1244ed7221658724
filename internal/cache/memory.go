package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryProvider is a process-local Provider used by single-replica deployments and
// the CLI. Values are copied on the way in and out.
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string]entry), now: time.Now}
}

// Get returns a copy of the stored value, or ErrCacheMiss when absent or expired.
func (m *MemoryProvider) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	it, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if m.expired(it) {
		m.mu.Lock()
		if cur, still := m.data[key]; still && m.expired(cur) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), it.value...), nil
}

// Set stores value with an optional TTL. A non-positive ttl never expires.
func (m *MemoryProvider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = m.entry(value, ttl)
	return nil
}

// SetNX stores value only when key is absent or expired.
func (m *MemoryProvider) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if it, ok := m.data[key]; ok && !m.expired(it) {
		return false, nil
	}
	m.data[key] = m.entry(value, ttl)
	return true, nil
}

// Del removes key.
func (m *MemoryProvider) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Close drops all entries.
func (m *MemoryProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]entry)
	return nil
}

func (m *MemoryProvider) entry(value []byte, ttl time.Duration) entry {
	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}
	return entry{value: append([]byte(nil), value...), expiresAt: expires}
}

func (m *MemoryProvider) expired(it entry) bool {
	return !it.expiresAt.IsZero() && !m.now().Before(it.expiresAt)
}
