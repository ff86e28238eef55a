package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainsight/site-api/internal/db"
	"github.com/chainsight/site-api/internal/mailer"
	"github.com/chainsight/site-api/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAlreadyRegistered is the soft outcome for a duplicate email: the
// caller surfaces a distinct "already on the waitlist" notice, not a
// failure.
var ErrAlreadyRegistered = errors.New("email already on the waitlist")

type repository interface {
	CreateWaitlistEntry(e *db.WaitlistEntry) error
}

type Service struct {
	repo    repository
	sender  mailer.Sender
	logger  *zap.Logger
	metrics *metrics.Collector
}

func NewService(repo *db.Repository, sender mailer.Sender, logger *zap.Logger, collector *metrics.Collector) *Service {
	return &Service{repo: repo, sender: sender, logger: logger, metrics: collector}
}

// Join persists the signup and, on a successful insert only, dispatches
// the confirmation email exactly once as a detached side effect. The
// join outcome depends solely on the persistence write.
func (s *Service) Join(ctx context.Context, entry *db.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.repo.CreateWaitlistEntry(entry); err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			s.logger.Info("duplicate waitlist signup",
				zap.String("email", entry.Email),
			)
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to persist waitlist entry: %w", err)
	}

	s.logger.Info("waitlist signup",
		zap.String("email", entry.Email),
		zap.String("region", entry.Region),
	)

	go s.sendConfirmation(entry)

	return nil
}

func (s *Service) sendConfirmation(entry *db.WaitlistEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.sender.SendWaitlistConfirmation(ctx, entry); err != nil {
		// Swallowed: a failed confirmation never rolls back the signup
		// and is never retried.
		s.logger.Error("confirmation email dispatch failed",
			zap.String("email", entry.Email),
			zap.Error(err),
		)
		s.metrics.RecordConfirmationEmail("error")
		return
	}

	s.metrics.RecordConfirmationEmail("sent")
}
