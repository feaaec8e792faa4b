package authcore

import (
	"context"
	"errors"
	"fmt"
)

// SignUp validates the raw credentials, hashes the password on the worker
// pool and creates the identity. A duplicate email returns
// [ErrUserAlreadyExists]; format failures return the matching validation
// sentinel.
func (e *Engine) SignUp(ctx context.Context, email, rawPassword string, requiresTwoFA bool) (Email, error) {
	if e == nil || e.users == nil {
		return "", ErrEngineNotReady
	}

	addr, err := ParseEmail(email)
	if err != nil {
		return "", err
	}
	pw, err := ParsePassword(rawPassword)
	if err != nil {
		return "", err
	}

	encoded, err := e.hasher.Hash(ctx, pw.raw)
	if err != nil {
		e.emitAudit(ctx, auditEventSignup, addr, false, ErrUnexpected, nil)
		return "", fmt.Errorf("%w: hashing failed: %v", ErrUnexpected, err)
	}

	identity := Identity{
		Email:         addr,
		PasswordHash:  encoded,
		RequiresTwoFA: requiresTwoFA,
	}
	if err := e.users.Add(ctx, identity); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			e.metricInc(MetricSignupConflict)
			e.emitAudit(ctx, auditEventSignup, addr, false, ErrUserAlreadyExists, nil)
			return "", ErrUserAlreadyExists
		}
		e.emitAudit(ctx, auditEventSignup, addr, false, ErrUnexpected, nil)
		return "", fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	e.metricInc(MetricSignupSuccess)
	e.emitAudit(ctx, auditEventSignup, addr, true, nil, map[string]string{
		"requires_2fa": fmt.Sprintf("%t", requiresTwoFA),
	})
	return addr, nil
}
