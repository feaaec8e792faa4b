package authcore

import (
	"context"
	"fmt"
)

// ValidateToken checks a presented bearer token: structural validity,
// signature, expiry, and the revocation ledger. Both the cryptographic
// check and the ledger lookup run before success is reported. On success
// it returns the email the token is bound to.
func (e *Engine) ValidateToken(ctx context.Context, token string) (Email, error) {
	if e == nil || e.tokens == nil {
		return "", ErrEngineNotReady
	}
	if token == "" {
		return "", ErrTokenMalformed
	}

	subject, err := e.jwtManager.Parse(token)
	if err != nil {
		e.metricInc(MetricTokenVerifyFailure)
		e.emitAudit(ctx, auditEventTokenVerify, "", false, ErrTokenInvalid, nil)
		return "", ErrTokenInvalid
	}

	addr, err := ParseEmail(subject)
	if err != nil {
		e.metricInc(MetricTokenVerifyFailure)
		e.emitAudit(ctx, auditEventTokenVerify, "", false, ErrTokenInvalid, nil)
		return "", ErrTokenInvalid
	}

	banned, err := e.tokens.IsBanned(ctx, token)
	if err != nil {
		e.emitAudit(ctx, auditEventTokenVerify, addr, false, ErrUnexpected, nil)
		return "", fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	if banned {
		e.metricInc(MetricTokenVerifyFailure)
		e.emitAudit(ctx, auditEventTokenVerify, addr, false, ErrTokenInvalid, map[string]string{
			"reason": "revoked",
		})
		return "", ErrTokenInvalid
	}

	e.metricInc(MetricTokenVerifySuccess)
	e.emitAudit(ctx, auditEventTokenVerify, addr, true, nil, nil)
	return addr, nil
}
