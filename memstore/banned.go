package memstore

import (
	"context"
	"sync"

	"github.com/nvasilev/authcore"
)

// BannedTokenStore is the in-memory revoked-token ledger. Entries are
// never removed: a ban is monotonic for the process lifetime.
type BannedTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewBannedTokenStore creates an empty ledger.
func NewBannedTokenStore() *BannedTokenStore {
	return &BannedTokenStore{tokens: make(map[string]struct{})}
}

// Ban records the token. Re-banning reports ErrTokenAlreadyBanned.
func (s *BannedTokenStore) Ban(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[token]; ok {
		return authcore.ErrTokenAlreadyBanned
	}
	s.tokens[token] = struct{}{}
	return nil
}

// IsBanned reports whether the token is in the ledger.
func (s *BannedTokenStore) IsBanned(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tokens[token]
	return ok, nil
}
