package progress

import (
	"context"
	"sync"
)

// MemoryStore keeps progress in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Progress
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Progress)}
}

func (s *MemoryStore) Load(_ context.Context, userID string) (Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.records[userID]
	if !ok {
		return Default(), nil
	}
	return p.clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, userID string, p Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = p.clone()
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
