package authcore

import (
	"context"
	"errors"
	"fmt"
)

const twoFAEmailSubject = "Your verification code"

// Login runs the credential check and either issues a bearer token
// directly or opens a 2FA challenge, depending on the identity's
// second-factor flag.
//
// Unknown email and wrong password both return [ErrInvalidCredentials];
// the distinction never leaves the store layer, so login cannot be used to
// enumerate accounts.
func (e *Engine) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	if e == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}

	addr, err := ParseEmail(email)
	if err != nil {
		return nil, err
	}
	pw, err := ParsePassword(rawPassword)
	if err != nil {
		return nil, err
	}

	if err := e.users.Validate(ctx, addr, pw.raw); err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidCredentials):
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLogin, addr, false, ErrInvalidCredentials, nil)
			return nil, ErrInvalidCredentials
		default:
			e.emitAudit(ctx, auditEventLogin, addr, false, ErrUnexpected, nil)
			return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
		}
	}

	identity, err := e.users.Get(ctx, addr)
	if err != nil {
		// The identity validated a moment ago; a miss here is a backend
		// fault, not an auth failure.
		e.emitAudit(ctx, auditEventLogin, addr, false, ErrUnexpected, nil)
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	if identity.RequiresTwoFA {
		return e.beginTwoFAChallenge(ctx, addr)
	}

	token, err := e.jwtManager.Issue(addr.String())
	if err != nil {
		e.emitAudit(ctx, auditEventLogin, addr, false, ErrUnexpected, nil)
		return nil, fmt.Errorf("%w: token issuance failed: %v", ErrUnexpected, err)
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLogin, addr, true, nil, nil)
	return &LoginResult{Token: token}, nil
}

// beginTwoFAChallenge inserts the challenge record before dispatching the
// code: a client must never hold an attempt id whose record could still
// fail to commit. At most one challenge may be outstanding per email; a
// conflicting insert is surfaced as an internal error rather than
// overwriting the live challenge.
func (e *Engine) beginTwoFAChallenge(ctx context.Context, addr Email) (*LoginResult, error) {
	attemptID, err := NewLoginAttemptID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	code, err := GenerateTwoFACode()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	if err := e.codes.Add(ctx, addr, attemptID, code); err != nil {
		e.emitAudit(ctx, auditEventTwoFAChallenge, addr, false, err, nil)
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	body := fmt.Sprintf("Your verification code is: %s", code)
	if err := e.email.Send(ctx, addr, twoFAEmailSubject, body); err != nil {
		// The client never learns the attempt id, so release the challenge
		// rather than locking the account out until it expires.
		_ = e.codes.Remove(ctx, addr)
		e.emitAudit(ctx, auditEventTwoFAChallenge, addr, false, ErrUnexpected, nil)
		return nil, fmt.Errorf("%w: email dispatch failed: %v", ErrUnexpected, err)
	}

	e.metricInc(MetricTwoFARequired)
	e.emitAudit(ctx, auditEventTwoFAChallenge, addr, true, nil, nil)
	return &LoginResult{TwoFARequired: true, LoginAttemptID: attemptID}, nil
}
