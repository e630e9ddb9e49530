package impl

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	mockrepo "fenix/internal/mocks/repository"
	"fenix/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestSettingsService(t *testing.T) (usecase.SettingsUsecase, *mockrepo.MockSettingsRepository, *mockrepo.MockAuditRepository) {
	settingsRepo := mockrepo.NewMockSettingsRepository(t)
	auditRepo := mockrepo.NewMockAuditRepository(t)

	service := NewSettingsService(SettingsServiceParams{
		SettingsRepo: settingsRepo,
		AuditRepo:    auditRepo,
		Logger:       testLogger(),
	})

	return service, settingsRepo, auditRepo
}

func TestSettingsService_Update_AdminForbidden(t *testing.T) {
	service, _, _ := createTestSettingsService(t)
	ctx := context.Background()

	settings, err := service.Update(ctx, newActiveUser(entity.RoleAdmin), &usecase.SettingsInput{
		DefaultLanguage: "es",
	})

	assert.Nil(t, settings)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestSettingsService_Update_UnsupportedLanguage(t *testing.T) {
	service, _, _ := createTestSettingsService(t)
	ctx := context.Background()

	settings, err := service.Update(ctx, newActiveUser(entity.RoleSuperAdmin), &usecase.SettingsInput{
		DefaultLanguage: "fr",
	})

	assert.Nil(t, settings)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestSettingsService_Update_Success(t *testing.T) {
	service, settingsRepo, _ := createTestSettingsService(t)
	ctx := context.Background()

	stored := &entity.PlatformSettings{
		DefaultLanguage: entity.LanguageES,
		EmailFrom:       "old@fenix.example",
	}

	settingsRepo.On("Get", ctx).Return(stored, nil)
	settingsRepo.On("Update", ctx, stored).Return(nil)

	settings, err := service.Update(ctx, newActiveUser(entity.RoleSuperAdmin), &usecase.SettingsInput{
		DefaultLanguage:            "zh-hans",
		EmailFrom:                  "pedidos@fenix.example",
		EmailFromName:              "Fenix Pedidos",
		OrderNotificationEmail:     "almacen@fenix.example",
		DefaultDeliveryWindowHours: 6,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.LanguageZhHans, settings.DefaultLanguage)
	assert.Equal(t, "pedidos@fenix.example", settings.EmailFrom)
	assert.Equal(t, 6, settings.DefaultDeliveryWindowHours)
}

func TestSettingsService_ListAudit_CustomerForbidden(t *testing.T) {
	service, _, _ := createTestSettingsService(t)
	ctx := context.Background()

	output, err := service.ListAudit(ctx, newActiveUser(entity.RoleUser), &usecase.ListAuditInput{})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestSettingsService_ListAudit_StaffAllowed(t *testing.T) {
	service, _, auditRepo := createTestSettingsService(t)
	ctx := context.Background()

	auditRepo.On("List", ctx, mock.AnythingOfType("repository.AuditFilter")).
		Return([]*entity.AuditLog{}, int64(0), nil)

	output, err := service.ListAudit(ctx, newActiveUser(entity.RoleAdmin), &usecase.ListAuditInput{})

	require.NoError(t, err)
	assert.Equal(t, int64(0), output.Total)
}
