package memstore

import (
	"context"
	"sync"

	"github.com/nvasilev/authcore"
)

type challenge struct {
	attemptID authcore.LoginAttemptID
	code      authcore.TwoFACode
}

// TwoFACodeStore is the in-memory challenge store: at most one
// outstanding (attempt id, code) pair per email.
type TwoFACodeStore struct {
	mu    sync.RWMutex
	codes map[authcore.Email]challenge
}

// NewTwoFACodeStore creates an empty challenge store.
func NewTwoFACodeStore() *TwoFACodeStore {
	return &TwoFACodeStore{codes: make(map[authcore.Email]challenge)}
}

// Add records a challenge. An outstanding challenge for the same email is
// an ErrCodeAlreadyExists conflict, never an overwrite.
func (s *TwoFACodeStore) Add(_ context.Context, email authcore.Email, attemptID authcore.LoginAttemptID, code authcore.TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codes[email]; ok {
		return authcore.ErrCodeAlreadyExists
	}
	s.codes[email] = challenge{attemptID: attemptID, code: code}
	return nil
}

// Get returns the outstanding challenge for email.
func (s *TwoFACodeStore) Get(_ context.Context, email authcore.Email) (authcore.LoginAttemptID, authcore.TwoFACode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.codes[email]
	if !ok {
		return "", "", authcore.ErrCodeNotFound
	}
	return c.attemptID, c.code, nil
}

// Remove consumes the outstanding challenge for email.
func (s *TwoFACodeStore) Remove(_ context.Context, email authcore.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.codes[email]; !ok {
		return authcore.ErrCodeNotFound
	}
	delete(s.codes, email)
	return nil
}
