package password

import (
	"errors"
	"strings"
	"testing"
)

var testParams = Params{
	Memory:      8192,
	Time:        1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   16,
}

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(testParams)
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}
	return h
}

func TestNewHasherRejectsWeakParams(t *testing.T) {
	cases := []Params{
		{},
		{Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 16},
		{Memory: 8192, Time: 0, Parallelism: 1, SaltLength: 16, KeyLength: 16},
		{Memory: 8192, Time: 1, Parallelism: 0, SaltLength: 16, KeyLength: 16},
		{Memory: 8192, Time: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16},
		{Memory: 8192, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 8},
	}
	for _, params := range cases {
		if _, err := NewHasher(params); err == nil {
			t.Fatalf("NewHasher(%+v): expected error", params)
		}
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := newTestHasher(t)

	encoded, err := h.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected encoding %q", encoded)
	}
	if strings.Contains(encoded, "Passw0rd!") {
		t.Fatal("encoded hash contains the raw password")
	}

	ok, err := h.Verify("Passw0rd!", encoded)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Fatal("round trip did not verify")
	}
}

func TestVerifyMismatch(t *testing.T) {
	h := newTestHasher(t)

	encoded, err := h.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	ok, err := h.Verify("WrongPass1", encoded)
	if err != nil {
		t.Fatalf("Verify errored on a clean mismatch: %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

func TestHashSaltsAreFresh(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	b, err := h.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

// Verify must honor the parameters embedded in the record, not the
// hasher's own configuration.
func TestVerifyUsesEmbeddedParams(t *testing.T) {
	weak := newTestHasher(t)
	strong, err := NewHasher(Params{Memory: 16384, Time: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	if err != nil {
		t.Fatalf("NewHasher failed: %v", err)
	}

	encoded, err := strong.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	ok, err := weak.Verify("Passw0rd!", encoded)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Fatal("cross-parameter verify failed")
	}
}

func TestVerifyMalformedRecord(t *testing.T) {
	h := newTestHasher(t)

	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=8192,t=1$c2FsdHNhbHRzYWx0c2FsdA$ZGlnZXN0",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$ZGlnZXN0",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA",
	}
	for _, record := range cases {
		if _, err := h.Verify("Passw0rd!", record); !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("Verify(%q): expected ErrMalformedHash, got %v", record, err)
		}
	}
}

func TestValidateEncoded(t *testing.T) {
	h := newTestHasher(t)

	encoded, err := h.Hash("Passw0rd!")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if err := ValidateEncoded(encoded); err != nil {
		t.Fatalf("ValidateEncoded rejected a fresh record: %v", err)
	}
	if err := ValidateEncoded("not-a-record"); !errors.Is(err, ErrMalformedHash) {
		t.Fatalf("expected ErrMalformedHash, got %v", err)
	}
}
