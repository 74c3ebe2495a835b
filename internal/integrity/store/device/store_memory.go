package device

import (
	"context"
	"fmt"
	"sync"
	"time"

	"devicegate/internal/integrity"
	"devicegate/internal/integrity/store"
)

// MemoryStore is an in-process device store for unit tests and local
// development.
type MemoryStore struct {
	mu      sync.RWMutex
	devices map[string]integrity.Device
}

// NewMemory constructs an empty in-memory device store.
func NewMemory() *MemoryStore {
	return &MemoryStore{devices: make(map[string]integrity.Device)}
}

func (s *MemoryStore) Get(_ context.Context, idfa string) (integrity.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.devices[idfa]
	if !ok {
		return integrity.Device{}, fmt.Errorf("device %q: %w", idfa, store.ErrNotFound)
	}
	return d, nil
}

func (s *MemoryStore) Upsert(_ context.Context, d integrity.Device) error {
	if d.IDFA == "" {
		return fmt.Errorf("device idfa is required: %w", store.ErrInvalidRecord)
	}
	if !d.BanStatus.Valid() {
		return fmt.Errorf("device ban status %q: %w", d.BanStatus, store.ErrInvalidRecord)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.devices[d.IDFA]; ok {
		d.CreatedAt = existing.CreatedAt
	} else {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
	s.devices[d.IDFA] = d
	return nil
}

// Len reports how many devices are stored. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices)
}
