package authcore

import (
	"context"
	"errors"
	"testing"
)

// openChallenge signs the user up with 2FA, logs in, and returns the
// attempt id the client saw with the code from the challenge store.
func openChallenge(t *testing.T, env *testEnv, email string) (LoginAttemptID, TwoFACode) {
	t.Helper()
	ctx := context.Background()

	if _, err := env.engine.SignUp(ctx, email, "Passw0rd!", true); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	result, err := env.engine.Login(ctx, email, "Passw0rd!")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !result.TwoFARequired {
		t.Fatal("expected a 2FA challenge")
	}

	_, code, err := env.codes.Get(ctx, Email(email))
	if err != nil {
		t.Fatalf("challenge lookup failed: %v", err)
	}
	return result.LoginAttemptID, code
}

func TestConfirmTwoFASuccess(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()
	attemptID, code := openChallenge(t, env, "bob@example.com")

	token, err := env.engine.ConfirmTwoFA(ctx, "bob@example.com", attemptID.String(), code.String())
	if err != nil {
		t.Fatalf("ConfirmTwoFA failed: %v", err)
	}

	addr, err := env.engine.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if addr.String() != "bob@example.com" {
		t.Fatalf("token bound to %q", addr)
	}
}

func TestConfirmTwoFAChallengeIsSingleUse(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()
	attemptID, code := openChallenge(t, env, "bob@example.com")

	if _, err := env.engine.ConfirmTwoFA(ctx, "bob@example.com", attemptID.String(), code.String()); err != nil {
		t.Fatalf("ConfirmTwoFA failed: %v", err)
	}

	// Replaying the consumed pair must fail.
	if _, err := env.engine.ConfirmTwoFA(ctx, "bob@example.com", attemptID.String(), code.String()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized on replay, got %v", err)
	}
}

func TestConfirmTwoFAWrongCode(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()
	attemptID, code := openChallenge(t, env, "bob@example.com")

	wrong := "000000"
	if wrong == code.String() {
		wrong = "000001"
	}
	if _, err := env.engine.ConfirmTwoFA(ctx, "bob@example.com", attemptID.String(), wrong); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// A failed attempt does not consume the challenge.
	if _, err := env.engine.ConfirmTwoFA(ctx, "bob@example.com", attemptID.String(), code.String()); err != nil {
		t.Fatalf("correct code after a wrong one failed: %v", err)
	}
}

func TestConfirmTwoFAWrongAttemptID(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()
	_, code := openChallenge(t, env, "bob@example.com")

	other, err := NewLoginAttemptID()
	if err != nil {
		t.Fatalf("NewLoginAttemptID failed: %v", err)
	}
	if _, err := env.engine.ConfirmTwoFA(ctx, "bob@example.com", other.String(), code.String()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestConfirmTwoFANoOutstandingChallenge(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	attemptID, err := NewLoginAttemptID()
	if err != nil {
		t.Fatalf("NewLoginAttemptID failed: %v", err)
	}
	if _, err := env.engine.ConfirmTwoFA(ctx, "ghost@example.com", attemptID.String(), "123456"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestConfirmTwoFAValidationPrecedesLookup(t *testing.T) {
	env := newTestEngine(t)
	ctx := context.Background()

	if _, err := env.engine.ConfirmTwoFA(ctx, "bad email", "x", "123456"); !errors.Is(err, ErrEmailInvalid) {
		t.Fatalf("expected ErrEmailInvalid, got %v", err)
	}
	if _, err := env.engine.ConfirmTwoFA(ctx, "a@b.com", "not-a-uuid", "123456"); !errors.Is(err, ErrAttemptIDInvalid) {
		t.Fatalf("expected ErrAttemptIDInvalid, got %v", err)
	}
	attemptID, err := NewLoginAttemptID()
	if err != nil {
		t.Fatalf("NewLoginAttemptID failed: %v", err)
	}
	if _, err := env.engine.ConfirmTwoFA(ctx, "a@b.com", attemptID.String(), "12345"); !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid, got %v", err)
	}
}
