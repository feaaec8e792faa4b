package authcore

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/nvasilev/authcore/internal/audit"
)

// Audit event types emitted by the engine.
const (
	auditEventSignup         = "signup"
	auditEventLogin          = "login"
	auditEventTwoFAChallenge = "2fa_challenge"
	auditEventTwoFAConfirm   = "2fa_confirm"
	auditEventLogout         = "logout"
	auditEventTokenVerify    = "token_verify"
)

// NewJSONWriterSink creates a [JSONWriterSink] writing to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}

// emitAudit records an auth event. Events carry at most the email address;
// passwords, hashes, codes and tokens never enter the audit stream.
func (e *Engine) emitAudit(ctx context.Context, eventType string, email Email, success bool, cause error, metadata map[string]string) {
	if e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Email:     email.String(),
		Success:   success,
		Metadata:  metadata,
	}
	if cause != nil {
		event.Error = cause.Error()
	}

	e.audit.Emit(ctx, event)
}
