package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestManager(t *testing.T, cfg Config) *Manager {
	t.Helper()
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManagerRejectsEmptySecret(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := NewManager(Config{Secret: []byte{}}); err == nil {
		t.Fatal("expected error for zero-length secret")
	}
}

func TestNewManagerDefaultTTL(t *testing.T) {
	m := newTestManager(t, Config{Secret: []byte("secret")})
	if m.TTL() != DefaultTTL {
		t.Fatalf("TTL = %v, want %v", m.TTL(), DefaultTTL)
	}
}

func TestIssueAndParse(t *testing.T) {
	m := newTestManager(t, Config{Secret: []byte("secret"), TTL: time.Minute})

	token, err := m.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token is not compact JWS: %q", token)
	}

	subject, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if subject != "user@example.com" {
		t.Fatalf("subject = %q", subject)
	}
}

func TestIssueEmptySubject(t *testing.T) {
	m := newTestManager(t, Config{Secret: []byte("secret")})
	if _, err := m.Issue(""); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestIssuedTokensAreUnique(t *testing.T) {
	m := newTestManager(t, Config{Secret: []byte("secret")})

	a, err := m.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	b, err := m.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if a == b {
		t.Fatal("two tokens for the same subject are identical")
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := newTestManager(t, Config{Secret: []byte("secret"), TTL: time.Millisecond})

	token, err := m.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	issuer := newTestManager(t, Config{Secret: []byte("secret-a")})
	verifier := newTestManager(t, Config{Secret: []byte("secret-b")})

	token, err := issuer.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseTampered(t *testing.T) {
	m := newTestManager(t, Config{Secret: []byte("secret")})

	token, err := m.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	cases := []string{
		"",
		"garbage",
		token + "tampered",
		// alg=none with a stripped signature must never validate.
		strings.Join(strings.Split(token, ".")[:2], ".") + ".",
	}
	for _, tc := range cases {
		if _, err := m.Parse(tc); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Parse(%q): expected ErrInvalidToken, got %v", tc, err)
		}
	}
}

func TestParseIssuerMismatch(t *testing.T) {
	issuer := newTestManager(t, Config{Secret: []byte("secret"), Issuer: "authcore"})
	other := newTestManager(t, Config{Secret: []byte("secret"), Issuer: "someone-else"})

	token, err := other.Issue("user@example.com")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
