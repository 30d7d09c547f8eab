package user

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the fallback Store backend used when MongoDB is
// unreachable at startup. A single mutex serializes writes; reads hand out
// copies so callers never share a record with the map.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*User)}
}

func (s *MemoryStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflicts(u) {
		return ErrDuplicate
	}

	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryStore) Save(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	if s.conflicts(u) {
		return ErrDuplicate
	}

	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryStore) ByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) ByEmail(ctx context.Context, email string) (*User, error) {
	return s.find(func(u *User) bool { return u.Email == email })
}

// ByVerificationToken mirrors the Mongo backend: the expiry check is part
// of the lookup, so an expired token behaves like a missing one.
func (s *MemoryStore) ByVerificationToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	now := time.Now()
	return s.find(func(u *User) bool {
		return u.VerificationToken == token &&
			u.VerificationExpires != nil && u.VerificationExpires.After(now)
	})
}

func (s *MemoryStore) ByResetToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	now := time.Now()
	return s.find(func(u *User) bool {
		return u.ResetToken == token &&
			u.ResetExpires != nil && u.ResetExpires.After(now)
	})
}

func (s *MemoryStore) find(match func(*User) bool) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// conflicts reports whether another record already holds u's email or
// username. Callers must hold the write lock.
func (s *MemoryStore) conflicts(u *User) bool {
	for id, existing := range s.users {
		if id == u.ID {
			continue
		}
		if existing.Email == u.Email || existing.Username == u.Username {
			return true
		}
	}
	return false
}

// Compile-time interface assertion
var _ Store = (*MemoryStore)(nil)
