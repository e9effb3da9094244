package alert

import (
	"context"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AlertRepository defines the interface for alert persistence
type AlertRepository interface {
	// FindByID finds an alert by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Alert, error)

	// FindAll finds alerts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Alert, error)

	// FindByStatus finds alerts in the given state
	FindByStatus(ctx context.Context, status Status, filter shared.Filter) ([]Alert, error)

	// FindByTest finds alerts raised against the given test
	FindByTest(ctx context.Context, testID uuid.UUID) ([]Alert, error)

	// Save creates or updates an alert
	Save(ctx context.Context, a *Alert) error

	// Delete deletes an alert
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts alerts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts alerts in the given state
	CountByStatus(ctx context.Context, status Status) (int64, error)
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// FindByID finds a notification by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByRecipient finds notifications addressed to the given user
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) ([]Notification, error)

	// CountUnread counts unread notifications for the given user
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// Save creates or updates a notification
	Save(ctx context.Context, n *Notification) error

	// MarkAllRead marks every notification of the given user as read
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error

	// Delete deletes a notification
	Delete(ctx context.Context, id uuid.UUID) error
}
