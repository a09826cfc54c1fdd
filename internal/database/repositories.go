package database

import (
	"context"

	"github.com/mvarma/portfolio-api/internal/models"
)

// SubscriberRepositoryInterface defines the interface for subscriber repository operations
// This interface enables better testability by allowing mock implementations
type SubscriberRepositoryInterface interface {
	ExistsActive(ctx context.Context, normalizedEmail string) (bool, error)
	Create(ctx context.Context, sub *models.NewsletterSubscriber) error
	Deactivate(ctx context.Context, normalizedEmail string) (int64, error)
	CountActive(ctx context.Context) (int, error)
}

// Ensure the concrete type implements the interface
var _ SubscriberRepositoryInterface = (*SubscriberRepository)(nil)
