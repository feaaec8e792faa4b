package authcore

import (
	"context"
	"log/slog"
)

// EmailClient is the outbound delivery boundary for 2FA codes. The engine
// treats any failure as opaque and maps it to [ErrUnexpected].
type EmailClient interface {
	Send(ctx context.Context, recipient Email, subject, body string) error
}

// NoOpEmailClient discards outgoing mail. It is the default client and an
// acceptable substitute in tests.
type NoOpEmailClient struct{}

// Send discards the message.
func (NoOpEmailClient) Send(context.Context, Email, string, string) error {
	return nil
}

// SlogEmailClient logs message dispatch instead of delivering it, for
// development environments without a mail transport. The body carries the
// one-time code and is never logged.
type SlogEmailClient struct {
	Logger *slog.Logger
}

// Send logs the recipient and subject at info level.
func (c SlogEmailClient) Send(_ context.Context, recipient Email, subject, _ string) error {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("email dispatched", "recipient", recipient.String(), "subject", subject)
	return nil
}
