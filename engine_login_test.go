package authcore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLoginDirectIssuesToken(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	if _, err := env.engine.SignUp(ctx, "alice@example.com", "Passw0rd!", false); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	result, err := env.engine.Login(ctx, "alice@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.TwoFARequired || result.LoginAttemptID != "" {
		t.Fatalf("unexpected 2FA challenge: %+v", result)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}

	addr, err := env.engine.ValidateToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if addr.String() != "alice@example.com" {
		t.Fatalf("token bound to %q", addr)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	if _, err := env.engine.SignUp(ctx, "alice@example.com", "Passw0rd!", false); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	if _, err := env.engine.Login(ctx, "alice@example.com", "WrongPass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// An unknown email must be indistinguishable from a wrong password.
func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEngine(t)

	_, err := env.engine.Login(context.Background(), "ghost@example.com", "Passw0rd!")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if errors.Is(err, ErrUserNotFound) {
		t.Fatal("login leaked account existence")
	}
}

func TestLoginOpensTwoFAChallenge(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	if _, err := env.engine.SignUp(ctx, "bob@example.com", "Passw0rd!", true); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	result, err := env.engine.Login(ctx, "bob@example.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !result.TwoFARequired {
		t.Fatal("expected a 2FA challenge")
	}
	if result.Token != "" {
		t.Fatal("no token may be issued before the second factor")
	}
	if _, err := ParseLoginAttemptID(result.LoginAttemptID.String()); err != nil {
		t.Fatalf("attempt id %q is not well formed: %v", result.LoginAttemptID, err)
	}

	// The challenge record must exist and match the dispatched code.
	attemptID, code, err := env.codes.Get(ctx, Email("bob@example.com"))
	if err != nil {
		t.Fatalf("challenge lookup failed: %v", err)
	}
	if attemptID != result.LoginAttemptID {
		t.Fatalf("stored attempt id %q, returned %q", attemptID, result.LoginAttemptID)
	}
	if !strings.Contains(env.email.lastBody(t), code.String()) {
		t.Fatal("dispatched email does not carry the stored code")
	}
}

func TestLoginEmailDispatchFailureReleasesChallenge(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	if _, err := env.engine.SignUp(ctx, "bob@example.com", "Passw0rd!", true); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}

	env.email.failWith = errors.New("smtp down")
	if _, err := env.engine.Login(ctx, "bob@example.com", "Passw0rd!"); !errors.Is(err, ErrUnexpected) {
		t.Fatalf("expected ErrUnexpected, got %v", err)
	}

	// The challenge must not stay outstanding, or the account would be
	// locked out of 2FA login until it expires.
	if _, _, err := env.codes.Get(ctx, Email("bob@example.com")); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected released challenge, got %v", err)
	}

	env.email.failWith = nil
	if _, err := env.engine.Login(ctx, "bob@example.com", "Passw0rd!"); err != nil {
		t.Fatalf("retry Login failed: %v", err)
	}
}

func TestLoginOutstandingChallengeConflict(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	if _, err := env.engine.SignUp(ctx, "bob@example.com", "Passw0rd!", true); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if _, err := env.engine.Login(ctx, "bob@example.com", "Passw0rd!"); err != nil {
		t.Fatalf("first Login failed: %v", err)
	}

	// A second login while a challenge is outstanding must not overwrite it.
	if _, err := env.engine.Login(ctx, "bob@example.com", "Passw0rd!"); !errors.Is(err, ErrUnexpected) {
		t.Fatalf("expected ErrUnexpected, got %v", err)
	}
}
