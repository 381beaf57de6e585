package record

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store for tests and for hosts that wire in their
// own persistence. Records are copied on the way in and out so callers
// cannot mutate stored state through a shared pointer.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

func NewMemStore() *MemStore {
	return &MemStore{records: make(map[string]*Record)}
}

func (s *MemStore) Get(ctx context.Context, itemID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[itemID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *MemStore) Put(ctx context.Context, itemID string, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[itemID] = &cp
	return nil
}

func (s *MemStore) Delete(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, itemID)
	return nil
}

func (s *MemStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*Record)
	return nil
}

func (s *MemStore) List(ctx context.Context) (map[string]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]*Record, len(s.records))
	for id, rec := range s.records {
		cp := *rec
		result[id] = &cp
	}
	return result, nil
}
