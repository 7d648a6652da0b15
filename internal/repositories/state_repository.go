package repositories

import (
	"context"
	"encoding/json"
	"sync"
)

// StateStore is the persistence port for pipeline state. The core
// pipeline never touches storage directly; the reload coordinator loads
// and saves whole documents through this interface, which keeps every
// computation stage pure and independently testable.
type StateStore interface {
	// Load unmarshals the stored document for key into out. The bool is
	// false when no document exists; that is not an error.
	Load(ctx context.Context, key string, out any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// memoryStateStore keeps documents in process memory. Used by tests and
// as the fallback when no database is configured.
type memoryStateStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStateStore() StateStore {
	return &memoryStateStore{docs: make(map[string][]byte)}
}

func (s *memoryStateStore) Load(_ context.Context, key string, out any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *memoryStateStore) Save(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *memoryStateStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.docs, key)
	s.mu.Unlock()
	return nil
}
