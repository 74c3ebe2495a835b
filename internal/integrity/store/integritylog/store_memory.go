package integritylog

import (
	"context"
	"net"
	"sync"
	"time"

	"devicegate/internal/integrity"
)

// MemoryStore is an in-process integrity log store for unit tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []integrity.IntegrityLog
	nextID  int64
}

// NewMemory constructs an empty in-memory integrity log store.
func NewMemory() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Append(_ context.Context, entry *integrity.IntegrityLog) error {
	if err := validate(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	s.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if net.ParseIP(entry.IP) == nil {
		entry.IP = ""
	}
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *MemoryStore) ListByIDFA(_ context.Context, idfa string) ([]integrity.IntegrityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []integrity.IntegrityLog
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].IDFA == idfa {
			out = append(out, s.entries[i])
		}
	}
	return out, nil
}

// Len reports the total number of entries. Test helper.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
