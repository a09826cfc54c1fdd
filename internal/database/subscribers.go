package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mvarma/portfolio-api/internal/models"
)

// ErrDuplicateSubscriber is returned when an insert collides with the active
// uniqueness constraint on normalized_email. Callers treat this as an
// idempotent "already subscribed" outcome, not a failure.
var ErrDuplicateSubscriber = errors.New("subscriber already exists")

// uniqueViolation is the Postgres error code for unique_violation
const uniqueViolation = "23505"

// SubscriberRepository handles newsletter subscriber database operations
type SubscriberRepository struct {
	db *DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// ExistsActive reports whether an active subscriber with the given normalized
// email exists.
func (r *SubscriberRepository) ExistsActive(ctx context.Context, normalizedEmail string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM newsletter_subscribers
			WHERE normalized_email = $1 AND is_active = TRUE
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, normalizedEmail).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check subscriber existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new subscriber record. A unique-constraint violation on
// normalized_email (a concurrent subscribe winning the race between the
// duplicate check and this insert) is reported as ErrDuplicateSubscriber.
func (r *SubscriberRepository) Create(ctx context.Context, sub *models.NewsletterSubscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email, normalized_email, subscribed_at, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING subscribed_at
	`

	err := r.db.QueryRowContext(ctx, query,
		sub.ID,
		sub.Email,
		sub.NormalizedEmail,
		sub.SubscribedAt,
		sub.IsActive,
	).Scan(&sub.SubscribedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSubscriber
		}
		return fmt.Errorf("failed to create subscriber: %w", err)
	}

	return nil
}

// Deactivate sets is_active = FALSE on all records matching the normalized
// email and returns the number of rows affected. Zero rows is not an error.
func (r *SubscriberRepository) Deactivate(ctx context.Context, normalizedEmail string) (int64, error) {
	query := `
		UPDATE newsletter_subscribers
		SET is_active = FALSE
		WHERE normalized_email = $1 AND is_active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, normalizedEmail)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate subscriber: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// CountActive returns the number of active subscribers
func (r *SubscriberRepository) CountActive(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM newsletter_subscribers WHERE is_active = TRUE`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	return count, nil
}

// ListRecent returns the most recently subscribed active subscribers
func (r *SubscriberRepository) ListRecent(ctx context.Context, limit int) ([]*models.NewsletterSubscriber, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, email, normalized_email, subscribed_at, is_active
		FROM newsletter_subscribers
		WHERE is_active = TRUE
		ORDER BY subscribed_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []*models.NewsletterSubscriber
	for rows.Next() {
		sub := &models.NewsletterSubscriber{}
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.NormalizedEmail, &sub.SubscribedAt, &sub.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}

	return subscribers, nil
}

// GetByNormalizedEmail retrieves the active subscriber for a normalized email
func (r *SubscriberRepository) GetByNormalizedEmail(ctx context.Context, normalizedEmail string) (*models.NewsletterSubscriber, error) {
	sub := &models.NewsletterSubscriber{}
	query := `
		SELECT id, email, normalized_email, subscribed_at, is_active
		FROM newsletter_subscribers
		WHERE normalized_email = $1 AND is_active = TRUE
	`

	err := r.db.QueryRowContext(ctx, query, normalizedEmail).Scan(
		&sub.ID,
		&sub.Email,
		&sub.NormalizedEmail,
		&sub.SubscribedAt,
		&sub.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}

	return sub, nil
}

// isUniqueViolation reports whether err is a Postgres unique_violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

// NewSubscriber builds a subscriber record ready for insertion
func NewSubscriber(email, normalizedEmail string) *models.NewsletterSubscriber {
	return &models.NewsletterSubscriber{
		ID:              uuid.New(),
		Email:           email,
		NormalizedEmail: normalizedEmail,
		SubscribedAt:    time.Now().UTC(),
		IsActive:        true,
	}
}
