package repository

import (
	"context"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// AuditFilter narrows audit log listings.
type AuditFilter struct {
	ActorID  *uuid.UUID
	TargetID *uuid.UUID
	Action   entity.AuditAction
	Limit    int
	Offset   int
}

// AuditRepository stores the append-only audit trail of privileged actions.
type AuditRepository interface {
	Append(ctx context.Context, log *entity.AuditLog) error

	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditLog, int64, error)
}
