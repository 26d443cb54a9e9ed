package memory

import (
	"context"
	"sync"

	"github.com/mamadbah2/resaletracker/internal/repository"
)

// Store keeps records in process memory. Values are copied on the way in
// and out so callers never share a buffer with the store.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
}

var _ repository.RecordStore = (*Store)(nil)

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string][]byte)}
}

func (s *Store) Load(_ context.Context, key string) ([]byte, bool, error) {
	if err := repository.ValidateKey(key); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.records[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *Store) Save(_ context.Context, key string, data []byte) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = append([]byte(nil), data...)
	return nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	if err := repository.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}
