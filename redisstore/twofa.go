package redisstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nvasilev/authcore"
)

const (
	twoFAKeyPrefix      = "2fa"
	twoFARecordVersion1 = 1

	// DefaultChallengeTTL bounds how long an unanswered challenge stays
	// live before redis reclaims it.
	DefaultChallengeTTL = 10 * time.Minute
)

// TwoFACodeStore is the redis challenge store: one key per email, created
// with SETNX so a live challenge is never overwritten.
type TwoFACodeStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTwoFACodeStore creates a challenge store on rdb. A non-positive ttl
// falls back to DefaultChallengeTTL.
func NewTwoFACodeStore(rdb *redis.Client, ttl time.Duration) *TwoFACodeStore {
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	return &TwoFACodeStore{rdb: rdb, ttl: ttl}
}

func (s *TwoFACodeStore) key(email authcore.Email) string {
	return twoFAKeyPrefix + ":" + email.String()
}

// Add records the challenge. An outstanding challenge for the email
// reports ErrCodeAlreadyExists.
func (s *TwoFACodeStore) Add(ctx context.Context, email authcore.Email, attemptID authcore.LoginAttemptID, code authcore.TwoFACode) error {
	encoded, err := encodeChallenge(attemptID, code)
	if err != nil {
		return fmt.Errorf("%w: %v", authcore.ErrUnexpected, err)
	}

	set, err := s.rdb.SetNX(ctx, s.key(email), encoded, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: 2fa code backend: %v", authcore.ErrUnexpected, err)
	}
	if !set {
		return authcore.ErrCodeAlreadyExists
	}
	return nil
}

// Get returns the outstanding challenge for email.
func (s *TwoFACodeStore) Get(ctx context.Context, email authcore.Email) (authcore.LoginAttemptID, authcore.TwoFACode, error) {
	data, err := s.rdb.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", authcore.ErrCodeNotFound
		}
		return "", "", fmt.Errorf("%w: 2fa code backend: %v", authcore.ErrUnexpected, err)
	}

	attemptID, code, err := decodeChallenge(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", authcore.ErrUnexpected, err)
	}
	return attemptID, code, nil
}

// Remove consumes the outstanding challenge for email. DEL reports how
// many keys it removed, which doubles as the existence check.
func (s *TwoFACodeStore) Remove(ctx context.Context, email authcore.Email) error {
	n, err := s.rdb.Del(ctx, s.key(email)).Result()
	if err != nil {
		return fmt.Errorf("%w: 2fa code backend: %v", authcore.ErrUnexpected, err)
	}
	if n == 0 {
		return authcore.ErrCodeNotFound
	}
	return nil
}

func encodeChallenge(attemptID authcore.LoginAttemptID, code authcore.TwoFACode) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(twoFARecordVersion1)

	for _, field := range []string{attemptID.String(), code.String()} {
		if len(field) > 255 {
			return nil, errors.New("2fa challenge field too long")
		}
		buf.WriteByte(byte(len(field)))
		buf.WriteString(field)
	}

	return buf.Bytes(), nil
}

func decodeChallenge(data []byte) (authcore.LoginAttemptID, authcore.TwoFACode, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return "", "", err
	}
	if version != twoFARecordVersion1 {
		return "", "", errors.New("unknown 2fa challenge record version")
	}

	fields := make([]string, 2)
	for i := range fields {
		length, err := reader.ReadByte()
		if err != nil {
			return "", "", err
		}
		raw := make([]byte, length)
		if _, err := io.ReadFull(reader, raw); err != nil {
			return "", "", err
		}
		fields[i] = string(raw)
	}

	attemptID, err := authcore.ParseLoginAttemptID(fields[0])
	if err != nil {
		return "", "", err
	}
	code, err := authcore.ParseTwoFACode(fields[1])
	if err != nil {
		return "", "", err
	}
	return attemptID, code, nil
}
