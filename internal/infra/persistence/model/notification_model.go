package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel mirrors the 'notifications' table. The partial unique
// index on (order_id, event_type) enforces at most one notification per
// lifecycle event; eta_updated is exempt because every window change should
// reach the customer. Each row also serves as the email outbox entry for the
// same event.
type NotificationModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notification_order_event,where:event_type <> 'eta_updated'"`
	EventType     string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_notification_order_event,where:event_type <> 'eta_updated'"`
	SubjectES     string    `gorm:"type:varchar(255);not null"`
	SubjectZhHans string    `gorm:"type:varchar(255)"`
	MessageES     string    `gorm:"type:text;not null"`
	MessageZhHans string    `gorm:"type:text"`
	IsRead        bool      `gorm:"not null;default:false;index"`

	EmailSent     bool   `gorm:"not null;default:false;index"`
	EmailAttempts int    `gorm:"not null;default:0"`
	LastEmailErr  string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}
