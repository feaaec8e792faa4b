package authcore

import (
	"strings"

	"github.com/google/uuid"
)

const attemptIDLen = 36 // 32 hex digits + 4 hyphens

// LoginAttemptID correlates a 2FA challenge with its verification request.
// It is a 128-bit random value in canonical hyphenated form, lowercase.
// The value is opaque to clients: it proves nothing on its own and only
// ever matches against the outstanding challenge record.
type LoginAttemptID string

// ParseLoginAttemptID validates a caller-supplied attempt id: canonical
// hyphenated UUID layout, case-insensitive, canonicalized to lowercase.
func ParseLoginAttemptID(s string) (LoginAttemptID, error) {
	if len(s) != attemptIDLen || strings.Count(s, "-") != 4 {
		return "", ErrAttemptIDInvalid
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return "", ErrAttemptIDInvalid
	}
	return LoginAttemptID(u.String()), nil
}

// NewLoginAttemptID generates a fresh cryptographically random attempt id.
func NewLoginAttemptID() (LoginAttemptID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return LoginAttemptID(u.String()), nil
}

// String returns the canonical hyphenated form.
func (id LoginAttemptID) String() string {
	return string(id)
}
