// Package newsletter implements newsletter subscription on top of the
// subscriber store, keyed by normalized email for duplicate detection.
package newsletter

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvarma/portfolio-api/internal/database"
	"github.com/mvarma/portfolio-api/internal/emailutil"
	"github.com/mvarma/portfolio-api/internal/models"
	"go.uber.org/zap"
)

// ErrInvalidEmail is returned when an address cannot be normalized
var ErrInvalidEmail = errors.New("invalid email address")

// Service coordinates duplicate detection and persistence for subscriptions
type Service struct {
	repo   database.SubscriberRepositoryInterface
	logger *zap.Logger
}

// NewService creates a newsletter service
func NewService(repo database.SubscriberRepositoryInterface, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// SubscribeResult is the outcome of a subscribe call. AlreadySubscribed is a
// successful, idempotent outcome, kept structurally distinct from errors so
// callers cannot confuse it with a failure.
type SubscribeResult struct {
	Subscriber        *models.NewsletterSubscriber
	AlreadySubscribed bool
}

// Subscribe records a new active subscriber for the address unless one already
// exists with the same normalized form. A uniqueness violation at insert time
// (a concurrent subscribe between the existence check and the insert) is
// folded into the AlreadySubscribed outcome.
func (s *Service) Subscribe(ctx context.Context, email string) (*SubscribeResult, error) {
	identity, err := emailutil.Normalize(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}

	exists, err := s.repo.ExistsActive(ctx, identity.Normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing subscription: %w", err)
	}
	if exists {
		return &SubscribeResult{AlreadySubscribed: true}, nil
	}

	sub := database.NewSubscriber(identity.Original, identity.Normalized)
	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, database.ErrDuplicateSubscriber) {
			s.logger.Info("duplicate_subscription_race",
				zap.String("normalized_email", identity.Normalized),
			)
			return &SubscribeResult{AlreadySubscribed: true}, nil
		}
		return nil, fmt.Errorf("failed to persist subscription: %w", err)
	}

	return &SubscribeResult{Subscriber: sub}, nil
}

// Unsubscribe deactivates any subscription matching the address. A missing
// subscription is a successful no-op.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	identity, err := emailutil.Normalize(email)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEmail, err)
	}

	affected, err := s.repo.Deactivate(ctx, identity.Normalized)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	s.logger.Info("unsubscribed",
		zap.String("normalized_email", identity.Normalized),
		zap.Int64("records_deactivated", affected),
	)
	return nil
}

// ActiveCount returns the number of active subscribers
func (s *Service) ActiveCount(ctx context.Context) (int, error) {
	count, err := s.repo.CountActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}
