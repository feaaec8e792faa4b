package authcore

import (
	"context"

	internalaudit "github.com/nvasilev/authcore/internal/audit"
	internalmetrics "github.com/nvasilev/authcore/internal/metrics"
)

// Identity is a registered account record. It is created once at signup
// and never mutated in place; PasswordHash is the PHC-encoded argon2id
// record and is never displayed.
type Identity struct {
	Email         Email
	PasswordHash  string
	RequiresTwoFA bool
}

// UserStore is the identity store contract. Implementations must make Add
// atomic with respect to the uniqueness check: two concurrent adds for the
// same email must not both succeed.
//
// Error contract: Add returns [ErrUserAlreadyExists] on duplicates; Get
// returns [ErrUserNotFound] on a miss; Validate returns [ErrUserNotFound],
// [ErrInvalidCredentials], or wraps [ErrUnexpected] for backend failures
// and corrupt persisted hashes.
type UserStore interface {
	Add(ctx context.Context, identity Identity) error
	Get(ctx context.Context, email Email) (Identity, error)
	Validate(ctx context.Context, email Email, rawPassword string) error
}

// BannedTokenStore is the revoked-token ledger. A ban is monotonic: once a
// token is present it stays present for the store lifetime. Re-banning is
// a reported error ([ErrTokenAlreadyBanned]), not a silent no-op.
type BannedTokenStore interface {
	Ban(ctx context.Context, token string) error
	IsBanned(ctx context.Context, token string) (bool, error)
}

// TwoFACodeStore holds at most one outstanding challenge per email. Add
// returns [ErrCodeAlreadyExists] rather than overwriting; Get and Remove
// return [ErrCodeNotFound] when no challenge is outstanding.
type TwoFACodeStore interface {
	Add(ctx context.Context, email Email, attemptID LoginAttemptID, code TwoFACode) error
	Get(ctx context.Context, email Email) (LoginAttemptID, TwoFACode, error)
	Remove(ctx context.Context, email Email) error
}

// LoginResult is returned by [Engine.Login]. Either Token is set (direct
// authentication) or TwoFARequired is true and LoginAttemptID carries the
// challenge correlation id, never both.
type LoginResult struct {
	Token          string
	TwoFARequired  bool
	LoginAttemptID LoginAttemptID
}

// AuditEvent is the structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink writes one JSON-encoded event per line to an io.Writer.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// Metrics holds the engine's atomic in-process counters.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot

// MetricID identifies a single counter in the metrics system.
type MetricID = internalmetrics.MetricID
