package postgres

import (
	"context"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"
	"fenix/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// notificationRepository implements the repository.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create persists a notification. The unique index on (order_id, event_type)
// turns duplicate emissions into ErrDuplicateNotification.
func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notificationM := fromNotificationDomain(notification)

	if err := repo.db.WithContext(ctx).Create(notificationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateNotification
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user or order reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	notification.ID = notificationM.ID
	notification.CreatedAt = notificationM.CreatedAt
	notification.UpdatedAt = notificationM.UpdatedAt

	return nil
}

// ListByUser returns the user's notifications, newest first.
func (repo *notificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]*entity.Notification, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ?", userID)

	if onlyUnread {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count notifications")
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var notificationModels []*model.NotificationModel
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list notifications")
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for _, notificationM := range notificationModels {
		notifications = append(notifications, toNotificationDomain(notificationM))
	}

	return notifications, total, nil
}

// CountUnread returns the number of unread notifications for a user.
func (repo *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

// MarkRead marks one notification as read, scoped to the owning user.
func (repo *notificationRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark notification read")
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (repo *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to mark notifications read")
	}

	return nil
}

// ListPendingEmail returns notifications whose email delivery is still
// outstanding and under the attempt limit, oldest first.
func (repo *notificationRepository) ListPendingEmail(ctx context.Context, maxAttempts, limit int) ([]*entity.Notification, error) {
	query := repo.db.WithContext(ctx).
		Where("email_sent = ? AND email_attempts < ?", false, maxAttempts).
		Order("created_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var notificationModels []*model.NotificationModel
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list pending email notifications")
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for _, notificationM := range notificationModels {
		notifications = append(notifications, toNotificationDomain(notificationM))
	}

	return notifications, nil
}

// MarkEmailSent records a successful email delivery.
func (repo *notificationRepository) MarkEmailSent(ctx context.Context, notificationID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ?", notificationID).
		Updates(map[string]any{
			"email_sent":     true,
			"last_email_err": "",
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark email sent")
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// MarkEmailFailed records a failed delivery attempt and its error.
func (repo *notificationRepository) MarkEmailFailed(ctx context.Context, notificationID uuid.UUID, deliveryErr string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ?", notificationID).
		Updates(map[string]any{
			"email_attempts": gorm.Expr("email_attempts + 1"),
			"last_email_err": deliveryErr,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark email failed")
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toNotificationDomain(data *model.NotificationModel) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:            data.ID,
		UserID:        data.UserID,
		OrderID:       data.OrderID,
		EventType:     entity.NotificationEvent(data.EventType),
		SubjectES:     data.SubjectES,
		SubjectZhHans: data.SubjectZhHans,
		MessageES:     data.MessageES,
		MessageZhHans: data.MessageZhHans,
		IsRead:        data.IsRead,
		EmailSent:     data.EmailSent,
		EmailAttempts: data.EmailAttempts,
		LastEmailErr:  data.LastEmailErr,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromNotificationDomain(notification *entity.Notification) *model.NotificationModel {
	if notification == nil {
		return nil
	}

	return &model.NotificationModel{
		ID:            notification.ID,
		UserID:        notification.UserID,
		OrderID:       notification.OrderID,
		EventType:     string(notification.EventType),
		SubjectES:     notification.SubjectES,
		SubjectZhHans: notification.SubjectZhHans,
		MessageES:     notification.MessageES,
		MessageZhHans: notification.MessageZhHans,
		IsRead:        notification.IsRead,
		EmailSent:     notification.EmailSent,
		EmailAttempts: notification.EmailAttempts,
		LastEmailErr:  notification.LastEmailErr,
	}
}
