package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/service"
	mockrepo "fenix/internal/mocks/repository"
	mocksvc "fenix/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mailWorkerFixtures struct {
	notificationRepo *mockrepo.MockNotificationRepository
	userRepo         *mockrepo.MockUserRepository
	settingsRepo     *mockrepo.MockSettingsRepository
	mailer           *mocksvc.MockMailer
}

func createTestMailWorker(t *testing.T) (*mailWorker, *mailWorkerFixtures) {
	fx := &mailWorkerFixtures{
		notificationRepo: mockrepo.NewMockNotificationRepository(t),
		userRepo:         mockrepo.NewMockUserRepository(t),
		settingsRepo:     mockrepo.NewMockSettingsRepository(t),
		mailer:           mocksvc.NewMockMailer(t),
	}

	w := &mailWorker{
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		notificationRepo: fx.notificationRepo,
		userRepo:         fx.userRepo,
		settingsRepo:     fx.settingsRepo,
		mailer:           fx.mailer,
		pollInterval:     defaultPollInterval,
		batchSize:        defaultBatchSize,
		maxAttempts:      defaultMaxAttempts,
	}

	return w, fx
}

func pendingNotification(userID uuid.UUID) *entity.Notification {
	return &entity.Notification{
		ID:            uuid.New(),
		UserID:        userID,
		OrderID:       uuid.New(),
		EventType:     entity.EventOrderConfirmed,
		SubjectES:     "Pedido ABC123 confirmado",
		SubjectZhHans: "订单 ABC123 已确认",
		MessageES:     "Su pedido ABC123 ha sido confirmado y está en proceso.",
		MessageZhHans: "您的订单 ABC123 已确认，正在处理中。",
	}
}

func TestMailWorker_DispatchBatch_EmptyOutbox(t *testing.T) {
	w, fx := createTestMailWorker(t)
	ctx := context.Background()

	fx.notificationRepo.On("ListPendingEmail", ctx, defaultMaxAttempts, defaultBatchSize).
		Return([]*entity.Notification{}, nil)

	require.NoError(t, w.dispatchBatch(ctx))
}

func TestMailWorker_DispatchBatch_SendsLocalizedEmail(t *testing.T) {
	w, fx := createTestMailWorker(t)
	ctx := context.Background()

	recipient := &entity.User{
		ID:       uuid.New(),
		Email:    "restaurante@example.com",
		Language: entity.LanguageZhHans,
	}
	notification := pendingNotification(recipient.ID)

	fx.notificationRepo.On("ListPendingEmail", ctx, defaultMaxAttempts, defaultBatchSize).
		Return([]*entity.Notification{notification}, nil)
	fx.settingsRepo.On("Get", ctx).
		Return(&entity.PlatformSettings{DefaultLanguage: entity.LanguageES}, nil)
	fx.userRepo.On("FindByID", ctx, recipient.ID).Return(recipient, nil)
	fx.mailer.On("Send", ctx, mock.MatchedBy(func(email *service.Email) bool {
		return email.To == recipient.Email && email.Subject == "订单 ABC123 已确认"
	})).Return(nil)
	fx.notificationRepo.On("MarkEmailSent", ctx, notification.ID).Return(nil)

	require.NoError(t, w.dispatchBatch(ctx))
}

func TestMailWorker_DispatchBatch_RecordsFailureAndContinues(t *testing.T) {
	w, fx := createTestMailWorker(t)
	ctx := context.Background()

	failing := pendingNotification(uuid.New())
	healthy := pendingNotification(uuid.New())
	recipient := &entity.User{ID: healthy.UserID, Email: "ok@example.com", Language: entity.LanguageES}

	fx.notificationRepo.On("ListPendingEmail", ctx, defaultMaxAttempts, defaultBatchSize).
		Return([]*entity.Notification{failing, healthy}, nil)
	fx.settingsRepo.On("Get", ctx).
		Return(&entity.PlatformSettings{DefaultLanguage: entity.LanguageES}, nil)

	fx.userRepo.On("FindByID", ctx, failing.UserID).
		Return(nil, errors.New("connection refused"))
	fx.notificationRepo.On("MarkEmailFailed", ctx, failing.ID, mock.AnythingOfType("string")).
		Return(nil)

	fx.userRepo.On("FindByID", ctx, healthy.UserID).Return(recipient, nil)
	fx.mailer.On("Send", ctx, mock.AnythingOfType("*service.Email")).Return(nil)
	fx.notificationRepo.On("MarkEmailSent", ctx, healthy.ID).Return(nil)

	require.NoError(t, w.dispatchBatch(ctx))
}
