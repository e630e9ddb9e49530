package postgres

import (
	"context"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"
	"fenix/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRowID pins the singleton row.
const settingsRowID = 1

// settingsRepository implements the repository.SettingsRepository interface.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository is the constructor for settingsRepository.
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

// Get returns the settings row, creating it with defaults when missing.
func (repo *settingsRepository) Get(ctx context.Context) (*entity.PlatformSettings, error) {
	var settingsM model.PlatformSettingsModel

	err := repo.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		First(&settingsM).Error
	if err == nil {
		return toSettingsDomain(&settingsM), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to load platform settings")
	}

	settingsM = model.PlatformSettingsModel{
		ID:              settingsRowID,
		DefaultLanguage: string(entity.LanguageES),
	}

	// DoNothing keeps this race-safe when two callers seed concurrently.
	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&settingsM).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to seed platform settings")
	}

	if err := repo.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		First(&settingsM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to reload platform settings")
	}

	return toSettingsDomain(&settingsM), nil
}

// Update persists the settings singleton.
func (repo *settingsRepository) Update(ctx context.Context, settings *entity.PlatformSettings) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PlatformSettingsModel{}).
		Where("id = ?", settingsRowID).
		Updates(map[string]any{
			"default_language":              string(settings.DefaultLanguage),
			"email_from":                    settings.EmailFrom,
			"email_from_name":               settings.EmailFromName,
			"order_notification_email":      settings.OrderNotificationEmail,
			"default_delivery_window_hours": settings.DefaultDeliveryWindowHours,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update platform settings")
	}

	if result.RowsAffected == 0 {
		// The singleton is seeded lazily; fall back to Get then retry once.
		if _, err := repo.Get(ctx); err != nil {
			return err
		}

		return repo.Update(ctx, settings)
	}

	return nil
}

// --- Mapper Functions ---

func toSettingsDomain(data *model.PlatformSettingsModel) *entity.PlatformSettings {
	if data == nil {
		return nil
	}

	return &entity.PlatformSettings{
		DefaultLanguage:            entity.Language(data.DefaultLanguage),
		EmailFrom:                  data.EmailFrom,
		EmailFromName:              data.EmailFromName,
		OrderNotificationEmail:     data.OrderNotificationEmail,
		DefaultDeliveryWindowHours: data.DefaultDeliveryWindowHours,
		CreatedAt:                  data.CreatedAt,
		UpdatedAt:                  data.UpdatedAt,
	}
}
