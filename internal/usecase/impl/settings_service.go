package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/rbac"
	"fenix/internal/domain/repository"
	"fenix/internal/usecase"
)

// settingsService implements the SettingsUsecase interface.
type settingsService struct {
	settingsRepo repository.SettingsRepository
	auditRepo    repository.AuditRepository
	logger       *slog.Logger
}

// SettingsServiceParams holds dependencies for settingsService, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	SettingsRepo repository.SettingsRepository
	AuditRepo    repository.AuditRepository
	Logger       *slog.Logger
}

// NewSettingsService is the constructor for settingsService.
func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		settingsRepo: params.SettingsRepo,
		auditRepo:    params.AuditRepo,
		logger:       params.Logger,
	}
}

// Get returns the platform settings singleton.
func (srv *settingsService) Get(ctx context.Context) (*entity.PlatformSettings, error) {
	return srv.settingsRepo.Get(ctx)
}

// Update replaces the platform settings. Super admin only.
func (srv *settingsService) Update(ctx context.Context, requester *entity.User, input *usecase.SettingsInput) (*entity.PlatformSettings, error) {
	if !rbac.IsSuperAdmin(requester) {
		return nil, domainerrors.ErrForbidden
	}

	lang := entity.Language(input.DefaultLanguage)
	if lang != entity.LanguageES && lang != entity.LanguageZhHans {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unsupported default language")
	}
	if input.DefaultDeliveryWindowHours < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("delivery window must not be negative")
	}

	settings, err := srv.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	settings.DefaultLanguage = lang
	settings.EmailFrom = input.EmailFrom
	settings.EmailFromName = input.EmailFromName
	settings.OrderNotificationEmail = input.OrderNotificationEmail
	settings.DefaultDeliveryWindowHours = input.DefaultDeliveryWindowHours

	if err := srv.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	srv.logger.InfoContext(ctx, "Platform settings updated",
		slog.String("actor", requester.Email),
	)

	return settings, nil
}

// ListAudit returns the audit trail. Staff only.
func (srv *settingsService) ListAudit(ctx context.Context, requester *entity.User, input *usecase.ListAuditInput) (*usecase.ListAuditOutput, error) {
	if !rbac.CanManageUsers(requester) {
		return nil, domainerrors.ErrForbidden
	}

	logs, total, err := srv.auditRepo.List(ctx, repository.AuditFilter{
		ActorID:  input.ActorID,
		TargetID: input.TargetID,
		Action:   entity.AuditAction(input.Action),
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.ListAuditOutput{Logs: logs, Total: total}, nil
}
