// Package redisstore provides redis-backed implementations of the
// banned-token ledger and the 2FA challenge store. Both rely on SETNX for
// their check-then-insert atomicity, so no client-side locking is needed.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nvasilev/authcore"
)

const bannedKeyPrefix = "bt"

// BannedTokenStore is the redis revoked-token ledger.
type BannedTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBannedTokenStore creates a ledger on rdb. A non-zero ttl lets entries
// expire together with the tokens they ban; zero keeps them forever.
func NewBannedTokenStore(rdb *redis.Client, ttl time.Duration) *BannedTokenStore {
	return &BannedTokenStore{rdb: rdb, ttl: ttl}
}

func (s *BannedTokenStore) key(token string) string {
	return bannedKeyPrefix + ":" + token
}

// Ban records the token via SETNX. An entry that is already present
// reports ErrTokenAlreadyBanned.
func (s *BannedTokenStore) Ban(ctx context.Context, token string) error {
	set, err := s.rdb.SetNX(ctx, s.key(token), 1, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: banned token backend: %v", authcore.ErrUnexpected, err)
	}
	if !set {
		return authcore.ErrTokenAlreadyBanned
	}
	return nil
}

// IsBanned reports whether the token is in the ledger.
func (s *BannedTokenStore) IsBanned(ctx context.Context, token string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: banned token backend: %v", authcore.ErrUnexpected, err)
	}
	return n > 0, nil
}
