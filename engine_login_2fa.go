package authcore

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
)

// ConfirmTwoFA completes a 2FA login. The caller-supplied attempt id and
// code must both match the outstanding challenge exactly; a mismatch on
// either returns [ErrUnauthorized] without revealing which field was
// wrong. The challenge is removed before the token is issued: it is
// single use, and re-submitting a consumed pair fails.
func (e *Engine) ConfirmTwoFA(ctx context.Context, email, attemptID, code string) (string, error) {
	if e == nil || e.codes == nil {
		return "", ErrEngineNotReady
	}

	addr, err := ParseEmail(email)
	if err != nil {
		return "", err
	}
	reqAttemptID, err := ParseLoginAttemptID(attemptID)
	if err != nil {
		return "", err
	}
	reqCode, err := ParseTwoFACode(code)
	if err != nil {
		return "", err
	}

	storedAttemptID, storedCode, err := e.codes.Get(ctx, addr)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			e.metricInc(MetricTwoFAFailure)
			e.emitAudit(ctx, auditEventTwoFAConfirm, addr, false, ErrUnauthorized, nil)
			return "", ErrUnauthorized
		}
		e.emitAudit(ctx, auditEventTwoFAConfirm, addr, false, ErrUnexpected, nil)
		return "", fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	// Compare both fields unconditionally, in constant time, so the
	// response cannot leak which one mismatched.
	idMatch := subtle.ConstantTimeCompare([]byte(reqAttemptID), []byte(storedAttemptID))
	codeMatch := subtle.ConstantTimeCompare([]byte(reqCode), []byte(storedCode))
	if idMatch&codeMatch != 1 {
		e.metricInc(MetricTwoFAFailure)
		e.emitAudit(ctx, auditEventTwoFAConfirm, addr, false, ErrUnauthorized, nil)
		return "", ErrUnauthorized
	}

	// Consume before issuing: a crash after this point costs the user a
	// retry, never a replayable code.
	if err := e.codes.Remove(ctx, addr); err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			// A concurrent verification won the race and consumed it.
			e.metricInc(MetricTwoFAFailure)
			e.emitAudit(ctx, auditEventTwoFAConfirm, addr, false, ErrUnauthorized, nil)
			return "", ErrUnauthorized
		}
		e.emitAudit(ctx, auditEventTwoFAConfirm, addr, false, ErrUnexpected, nil)
		return "", fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	token, err := e.jwtManager.Issue(addr.String())
	if err != nil {
		e.emitAudit(ctx, auditEventTwoFAConfirm, addr, false, ErrUnexpected, nil)
		return "", fmt.Errorf("%w: token issuance failed: %v", ErrUnexpected, err)
	}

	e.metricInc(MetricTwoFASuccess)
	e.emitAudit(ctx, auditEventTwoFAConfirm, addr, true, nil, nil)
	return token, nil
}
