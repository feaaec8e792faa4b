package authcore

import (
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordRunes = 8
	maxPasswordRunes = 128
)

// Password is a raw password that satisfied the format policy. It exists
// only for the duration of a signup or login request: it is never
// persisted, and its String form is redacted so it cannot leak through
// logs or error values.
type Password struct {
	raw string
}

// ParsePassword applies the password format policy. Rules are checked in a
// fixed order and the first failing rule wins: empty, length below 8 runes,
// length above 128 runes, missing uppercase, missing lowercase, missing
// ASCII digit. Length is counted in Unicode code points, not bytes.
func ParsePassword(s string) (Password, error) {
	if s == "" {
		return Password{}, ErrPasswordEmpty
	}
	if n := utf8.RuneCountInString(s); n < minPasswordRunes {
		return Password{}, ErrPasswordTooShort
	} else if n > maxPasswordRunes {
		return Password{}, ErrPasswordTooLong
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper {
		return Password{}, ErrPasswordMissingUpper
	}
	if !hasLower {
		return Password{}, ErrPasswordMissingLower
	}
	if !hasDigit {
		return Password{}, ErrPasswordMissingDigit
	}

	return Password{raw: s}, nil
}

// String always returns a redacted placeholder.
func (p Password) String() string {
	return "[REDACTED]"
}
