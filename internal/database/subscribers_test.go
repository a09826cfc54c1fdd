package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unique violation",
			err:  &pq.Error{Code: "23505", Constraint: "newsletter_subscribers_normalized_email_active_idx"},
			want: true,
		},
		{
			name: "wrapped unique violation",
			err:  fmt.Errorf("insert failed: %w", &pq.Error{Code: "23505"}),
			want: true,
		},
		{
			name: "other postgres error",
			err:  &pq.Error{Code: "23503"},
			want: false,
		},
		{
			name: "non-postgres error",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewSubscriber(t *testing.T) {
	t.Parallel()

	sub := NewSubscriber("John.Doe@example.com", "john.doe@example.com")

	if sub.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected a generated ID")
	}
	if sub.Email != "John.Doe@example.com" {
		t.Errorf("Email = %q", sub.Email)
	}
	if sub.NormalizedEmail != "john.doe@example.com" {
		t.Errorf("NormalizedEmail = %q", sub.NormalizedEmail)
	}
	if !sub.IsActive {
		t.Error("new subscriber should be active")
	}
	if sub.SubscribedAt.IsZero() {
		t.Error("SubscribedAt should be set")
	}
}
