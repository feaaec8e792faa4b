package authcore

import "strings"

// RFC 5321 caps for the local part and domain.
const (
	maxEmailLocalLen  = 64
	maxEmailDomainLen = 255
)

// Email is a normalized, syntactically valid email address. It is the
// primary key for every per-user record, comparable and safe to use as a
// map key. The zero value is not a valid address; obtain one via
// [ParseEmail].
type Email string

// ParseEmail trims the input and validates it against the address grammar:
// exactly one "@", a non-empty local part of at most 64 characters, a
// non-empty domain of at most 255 characters with no leading, trailing or
// consecutive dots, and no whitespace anywhere. Parsing an already parsed
// address is a fixed point.
func ParseEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmailEmpty
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return "", ErrEmailInvalid
	}
	if strings.Count(s, "@") != 1 {
		return "", ErrEmailInvalid
	}

	local, domain, _ := strings.Cut(s, "@")
	if local == "" || len(local) > maxEmailLocalLen {
		return "", ErrEmailInvalid
	}
	if domain == "" || len(domain) > maxEmailDomainLen {
		return "", ErrEmailInvalid
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", ErrEmailInvalid
	}
	if strings.Contains(domain, "..") {
		return "", ErrEmailInvalid
	}

	return Email(s), nil
}

// String returns the normalized address.
func (e Email) String() string {
	return string(e)
}
