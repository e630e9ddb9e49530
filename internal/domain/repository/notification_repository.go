package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// ErrNotificationNotFound is returned when a notification does not exist or
// does not belong to the requesting user.
var ErrNotificationNotFound = errors.New("notification not found")

// ErrDuplicateNotification is returned when a notification for the same
// order and event already exists. Callers treat it as a successful no-op.
var ErrDuplicateNotification = errors.New("notification already exists for order and event")

// NotificationRepository stores in-app notifications. Each row doubles as
// the email outbox entry for the same event; the mail worker drains rows
// whose email has not been sent yet.
type NotificationRepository interface {
	// Create persists a notification. A unique constraint on
	// (order_id, event_type) guarantees at most one notification per
	// order event; violations surface as ErrDuplicateNotification.
	Create(ctx context.Context, notification *entity.Notification) error

	ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]*entity.Notification, int64, error)

	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkRead marks a single notification as read for the given user.
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error

	// MarkAllRead marks every unread notification of the user as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// ListPendingEmail returns notifications whose email delivery is
	// still outstanding and under the attempt limit, oldest first.
	ListPendingEmail(ctx context.Context, maxAttempts, limit int) ([]*entity.Notification, error)

	MarkEmailSent(ctx context.Context, notificationID uuid.UUID) error

	// MarkEmailFailed records a failed delivery attempt and its error so
	// the worker retries later.
	MarkEmailFailed(ctx context.Context, notificationID uuid.UUID, deliveryErr string) error
}
