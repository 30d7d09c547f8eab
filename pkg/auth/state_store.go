package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryStateStore keeps OAuth states in process memory. States are short
// lived and loss on restart only forces the user to restart the sign-in
// flow, so in-memory storage is acceptable even in production.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

// NewMemoryStateStore creates an in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]time.Time)}
}

func (s *MemoryStateStore) Store(ctx context.Context, state string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Opportunistic pruning keeps the map from growing with abandoned flows.
	now := time.Now()
	for st, exp := range s.states {
		if !exp.After(now) {
			delete(s.states, st)
		}
	}

	s.states[state] = expiresAt
	return nil
}

func (s *MemoryStateStore) Consume(ctx context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.states[state]
	if !ok {
		return ErrInvalidState
	}
	delete(s.states, state)

	if !exp.After(time.Now()) {
		return ErrInvalidState
	}
	return nil
}

var _ StateStore = (*MemoryStateStore)(nil)
