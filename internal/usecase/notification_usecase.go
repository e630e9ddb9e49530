package usecase

import (
	"context"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// NotificationView is one notification rendered in the reader's language.
type NotificationView struct {
	Notification *entity.Notification
	Subject      string
	Message      string
}

// ListNotificationsInput narrows a user's notification listing.
type ListNotificationsInput struct {
	OnlyUnread bool
	Limit      int
	Offset     int
}

// ListNotificationsOutput returns one page of localized notifications.
type ListNotificationsOutput struct {
	Notifications []*NotificationView
	Total         int64
	Unread        int64
}

// NotificationUsecase defines the interface for the in-app notification feed.
type NotificationUsecase interface {
	List(ctx context.Context, requester *entity.User, input *ListNotificationsInput) (*ListNotificationsOutput, error)
	MarkRead(ctx context.Context, requester *entity.User, id uuid.UUID) error
	MarkAllRead(ctx context.Context, requester *entity.User) error
}
