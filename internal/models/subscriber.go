package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber represents a newsletter subscription record
type NewsletterSubscriber struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	NormalizedEmail string    `json:"normalized_email"`
	SubscribedAt    time.Time `json:"subscribed_at"`
	IsActive        bool      `json:"is_active"`
}
