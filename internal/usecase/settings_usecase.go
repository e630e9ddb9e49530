package usecase

import (
	"context"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// SettingsInput carries the editable platform settings fields.
type SettingsInput struct {
	DefaultLanguage            string
	EmailFrom                  string
	EmailFromName              string
	OrderNotificationEmail     string
	DefaultDeliveryWindowHours int
}

// ListAuditInput narrows the audit log listing.
type ListAuditInput struct {
	ActorID  *uuid.UUID
	TargetID *uuid.UUID
	Action   string
	Limit    int
	Offset   int
}

// ListAuditOutput returns one page of audit entries plus the total count.
type ListAuditOutput struct {
	Logs  []*entity.AuditLog
	Total int64
}

// SettingsUsecase defines the interface for platform-wide administration:
// the settings singleton and the audit trail.
type SettingsUsecase interface {
	// Get returns the settings. Any active account may read them; the
	// default language feeds notification rendering.
	Get(ctx context.Context) (*entity.PlatformSettings, error)

	// Update replaces the settings. Restricted to super admins.
	Update(ctx context.Context, requester *entity.User, input *SettingsInput) (*entity.PlatformSettings, error)

	// ListAudit returns the audit trail. Restricted to staff.
	ListAudit(ctx context.Context, requester *entity.User, input *ListAuditInput) (*ListAuditOutput, error)
}
