package mailer

import (
	"context"

	"github.com/chainsight/site-api/internal/db"
	"go.uber.org/zap"
)

// Sender dispatches the waitlist confirmation email. Dispatch is a
// best-effort side effect of joining; its failure must never convert a
// successful join into a failure.
type Sender interface {
	SendWaitlistConfirmation(ctx context.Context, entry *db.WaitlistEntry) error
}

// LogSender is used when outbound email is disabled; it only records the
// dispatch.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendWaitlistConfirmation(_ context.Context, entry *db.WaitlistEntry) error {
	s.logger.Info("email disabled, skipping waitlist confirmation",
		zap.String("email", entry.Email),
	)
	return nil
}
