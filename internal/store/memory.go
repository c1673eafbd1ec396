package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Store used by tests and dashctl dry runs.
// Values round-trip through JSON so it behaves like the Redis adapter,
// including losing non-serializable state.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte

	// FailNext makes the next operation fail, for exercising the
	// store-unavailable paths.
	FailNext error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

// Get retrieves and unmarshals the value at key.
func (s *MemoryStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	if err := s.takeFailure(); err != nil {
		s.mu.Unlock()
		return false, err
	}
	data, ok := s.values[key]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// Set marshals and stores the value at key.
func (s *MemoryStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}
	s.values[key] = data
	return nil
}
