package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Cache for unit tests and local development without
// Redis. Expirations are honored lazily on read.
type Memory struct {
	mu      sync.RWMutex
	values  map[string]memoryEntry
	sets    map[string]map[string]struct{}
	nowFunc func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemory constructs an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		values:  make(map[string]memoryEntry),
		sets:    make(map[string]map[string]struct{}),
		nowFunc: time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	entry, ok := m.values[key]
	m.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && m.nowFunc().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.values, key)
		m.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.nowFunc().Add(ttl)
	}

	m.mu.Lock()
	m.values[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *Memory) IsMember(_ context.Context, set, member string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	members, ok := m.sets[set]
	if !ok {
		return false, nil
	}
	_, ok = members[member]
	return ok, nil
}

// AddMembers populates a set. Test helper mirroring Redis SADD.
func (m *Memory) AddMembers(set string, members ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sets[set] == nil {
		m.sets[set] = make(map[string]struct{})
	}
	for _, member := range members {
		m.sets[set][member] = struct{}{}
	}
}

// SetNow overrides the clock used for expiry checks. Test helper.
func (m *Memory) SetNow(now func() time.Time) {
	m.mu.Lock()
	m.nowFunc = now
	m.mu.Unlock()
}
