package authcore

import (
	"context"
	"errors"
	"fmt"
)

// Logout revokes a presented token by writing it to the banned-token
// ledger. The token must still validate at the moment of logout; an
// already-revoked token, including a repeated logout with the same token,
// is an [ErrTokenInvalid] condition, not a success.
//
// Detecting a request with no token at all is the transport's job
// ([ErrMissingToken]); Logout only ever sees an extracted token string.
func (e *Engine) Logout(ctx context.Context, token string) error {
	if e == nil || e.tokens == nil {
		return ErrEngineNotReady
	}
	if token == "" {
		return ErrTokenInvalid
	}

	addr, err := e.ValidateToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnexpected) {
			return err
		}
		return ErrTokenInvalid
	}

	if err := e.tokens.Ban(ctx, token); err != nil {
		if errors.Is(err, ErrTokenAlreadyBanned) {
			e.emitAudit(ctx, auditEventLogout, addr, false, ErrTokenAlreadyBanned, nil)
			return ErrTokenInvalid
		}
		e.emitAudit(ctx, auditEventLogout, addr, false, ErrUnexpected, nil)
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, addr, true, nil, nil)
	return nil
}
