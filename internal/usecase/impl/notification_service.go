package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"
	"fenix/internal/usecase"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	settingsRepo     repository.SettingsRepository
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for notificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	SettingsRepo     repository.SettingsRepository
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		settingsRepo:     params.SettingsRepo,
		logger:           params.Logger,
	}
}

// List returns one page of the requester's notifications, rendered in their
// resolved language.
func (srv *notificationService) List(ctx context.Context, requester *entity.User, input *usecase.ListNotificationsInput) (*usecase.ListNotificationsOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	notifications, total, err := srv.notificationRepo.ListByUser(ctx, requester.ID, input.OnlyUnread, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	unread, err := srv.notificationRepo.CountUnread(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	platformDefault := entity.LanguageES
	if settings, err := srv.settingsRepo.Get(ctx); err == nil {
		platformDefault = settings.DefaultLanguage
	}
	lang := entity.ResolveLanguage(requester.Language, platformDefault)

	output := &usecase.ListNotificationsOutput{Total: total, Unread: unread}
	for _, notification := range notifications {
		subject, message := notification.Localized(lang)
		output.Notifications = append(output.Notifications, &usecase.NotificationView{
			Notification: notification,
			Subject:      subject,
			Message:      message,
		})
	}

	return output, nil
}

// MarkRead marks a single notification as read.
func (srv *notificationService) MarkRead(ctx context.Context, requester *entity.User, id uuid.UUID) error {
	if requester == nil {
		return domainerrors.ErrForbidden
	}

	return srv.notificationRepo.MarkRead(ctx, requester.ID, id)
}

// MarkAllRead marks all of the requester's notifications as read.
func (srv *notificationService) MarkAllRead(ctx context.Context, requester *entity.User) error {
	if requester == nil {
		return domainerrors.ErrForbidden
	}

	return srv.notificationRepo.MarkAllRead(ctx, requester.ID)
}
