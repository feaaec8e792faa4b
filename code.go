package authcore

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const twoFACodeDigits = 6

var twoFACodeSpace = big.NewInt(1_000_000)

// TwoFACode is a 6-digit one-time code: exactly six ASCII digits, no
// whitespace, no other characters.
type TwoFACode string

// ParseTwoFACode validates a caller-supplied code. Non-ASCII digit scripts
// (Arabic-Indic, Devanagari, fullwidth) are rejected.
func ParseTwoFACode(s string) (TwoFACode, error) {
	if len(s) != twoFACodeDigits {
		return "", ErrCodeInvalid
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", ErrCodeInvalid
		}
	}
	return TwoFACode(s), nil
}

// GenerateTwoFACode draws a fresh code uniformly from [0, 999999] using
// crypto/rand, zero-padded to 6 digits.
func GenerateTwoFACode() (TwoFACode, error) {
	n, err := rand.Int(rand.Reader, twoFACodeSpace)
	if err != nil {
		return "", err
	}
	return TwoFACode(fmt.Sprintf("%06d", n.Int64())), nil
}

// String returns the code digits.
func (c TwoFACode) String() string {
	return string(c)
}
