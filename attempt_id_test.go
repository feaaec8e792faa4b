package authcore

import (
	"errors"
	"strings"
	"testing"
)

func TestParseLoginAttemptID(t *testing.T) {
	id, err := NewLoginAttemptID()
	if err != nil {
		t.Fatalf("NewLoginAttemptID failed: %v", err)
	}

	parsed, err := ParseLoginAttemptID(id.String())
	if err != nil {
		t.Fatalf("ParseLoginAttemptID(%q) failed: %v", id, err)
	}
	if parsed != id {
		t.Fatalf("round trip changed value: %q vs %q", parsed, id)
	}
}

func TestParseLoginAttemptIDCanonicalizesCase(t *testing.T) {
	id, err := ParseLoginAttemptID("550E8400-E29B-41D4-A716-446655440000")
	if err != nil {
		t.Fatalf("ParseLoginAttemptID failed: %v", err)
	}
	if id.String() != strings.ToLower(id.String()) {
		t.Fatalf("expected lowercase canonical form, got %q", id)
	}
}

func TestParseLoginAttemptIDInvalid(t *testing.T) {
	cases := []string{
		"",
		"not-a-uuid",
		"550e8400e29b41d4a716446655440000",      // no hyphens
		"550e8400-e29b-41d4-a716-44665544000",   // too short
		"550e8400-e29b-41d4-a716-4466554400000", // too long
		"550e8400-e29b-41d4-a716-44665544zzzz",  // non-hex
	}
	for _, input := range cases {
		if _, err := ParseLoginAttemptID(input); !errors.Is(err, ErrAttemptIDInvalid) {
			t.Fatalf("ParseLoginAttemptID(%q): expected ErrAttemptIDInvalid, got %v", input, err)
		}
	}
}
