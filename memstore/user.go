// Package memstore provides the in-memory reference implementations of the
// authcore store contracts. Each store guards its map with a
// reader/writer lock: reads run concurrently, and a mutation holds the
// write lock across its whole check-then-modify sequence so uniqueness
// checks stay atomic.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/nvasilev/authcore"
	"github.com/nvasilev/authcore/password"
)

// UserStore is the in-memory authcore.UserStore.
type UserStore struct {
	mu     sync.RWMutex
	users  map[authcore.Email]authcore.Identity
	hasher *password.Pool
}

// NewUserStore creates an empty store verifying credentials on hasher.
func NewUserStore(hasher *password.Pool) *UserStore {
	return &UserStore{
		users:  make(map[authcore.Email]authcore.Identity),
		hasher: hasher,
	}
}

// Add inserts the identity. The existence check and the insert happen
// under one write lock, so concurrent adds for the same email cannot both
// succeed.
func (s *UserStore) Add(_ context.Context, identity authcore.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[identity.Email]; ok {
		return authcore.ErrUserAlreadyExists
	}
	s.users[identity.Email] = identity
	return nil
}

// Get returns the identity for email.
func (s *UserStore) Get(_ context.Context, email authcore.Email) (authcore.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.users[email]
	if !ok {
		return authcore.Identity{}, authcore.ErrUserNotFound
	}
	return identity, nil
}

// Validate looks the identity up and verifies rawPassword against its
// stored hash on the worker pool. The lock is released before hashing:
// verification is slow by design and must not starve readers.
func (s *UserStore) Validate(ctx context.Context, email authcore.Email, rawPassword string) error {
	identity, err := s.Get(ctx, email)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(ctx, rawPassword, identity.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: %v", authcore.ErrUnexpected, err)
	}
	if !ok {
		return authcore.ErrInvalidCredentials
	}
	return nil
}
