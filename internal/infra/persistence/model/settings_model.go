package model

import "time"

// PlatformSettingsModel mirrors the 'platform_settings' table. The table
// holds a single row with a fixed primary key.
type PlatformSettingsModel struct {
	ID                         int    `gorm:"primary_key"`
	DefaultLanguage            string `gorm:"type:varchar(10);not null;default:'es'"`
	EmailFrom                  string `gorm:"type:varchar(255)"`
	EmailFromName              string `gorm:"type:varchar(150)"`
	OrderNotificationEmail     string `gorm:"type:varchar(255)"`
	DefaultDeliveryWindowHours int    `gorm:"not null;default:0"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// TableName explicitly sets the table name for GORM.
func (PlatformSettingsModel) TableName() string {
	return "platform_settings"
}
