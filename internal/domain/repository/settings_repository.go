package repository

import (
	"context"

	"fenix/internal/domain/entity"
)

// SettingsRepository stores the platform-wide settings singleton.
type SettingsRepository interface {
	// Get returns the settings row, creating it with defaults when the
	// table is empty.
	Get(ctx context.Context) (*entity.PlatformSettings, error)

	Update(ctx context.Context, settings *entity.PlatformSettings) error
}
