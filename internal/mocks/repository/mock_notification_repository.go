package mockrepo

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockNotificationRepository mocks repository.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

// NewMockNotificationRepository creates a mock bound to the test's lifecycle.
func NewMockNotificationRepository(t *testing.T) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]*entity.Notification, int64, error) {
	args := m.Called(ctx, userID, onlyUnread, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return m.Called(ctx, userID, notificationID).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockNotificationRepository) ListPendingEmail(ctx context.Context, maxAttempts, limit int) ([]*entity.Notification, error) {
	args := m.Called(ctx, maxAttempts, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkEmailSent(ctx context.Context, notificationID uuid.UUID) error {
	return m.Called(ctx, notificationID).Error(0)
}

func (m *MockNotificationRepository) MarkEmailFailed(ctx context.Context, notificationID uuid.UUID, deliveryErr string) error {
	return m.Called(ctx, notificationID, deliveryErr).Error(0)
}
