package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogModel mirrors the 'audit_logs' table. Rows are append-only.
type AuditLogModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ActorID   *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:varchar(40);not null;index"`
	TargetID  *uuid.UUID `gorm:"type:uuid;index"`
	Detail    string     `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AuditLogModel) TableName() string {
	return "audit_logs"
}
