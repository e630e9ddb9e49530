// Package model defines the GORM models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email         string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	FullName      string    `gorm:"type:varchar(150)"`
	Role          string    `gorm:"type:varchar(20);not null;default:'user';index"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	Language      string    `gorm:"type:varchar(10)"`
	EmailVerified bool      `gorm:"not null;default:false"`

	CompanyPhone       string `gorm:"type:varchar(50)"`
	DeliveryPhone      string `gorm:"type:varchar(50)"`
	FiscalAddress      string `gorm:"type:varchar(255)"`
	FiscalCity         string `gorm:"type:varchar(100)"`
	FiscalProvince     string `gorm:"type:varchar(100)"`
	FiscalPostalCode   string `gorm:"type:varchar(20)"`
	Country            string `gorm:"type:varchar(100)"`
	DeliveryType       string `gorm:"type:varchar(50)"`
	DeliveryAddress    string `gorm:"type:varchar(255)"`
	DeliveryCity       string `gorm:"type:varchar(100)"`
	DeliveryProvince   string `gorm:"type:varchar(100)"`
	DeliveryPostalCode string `gorm:"type:varchar(20)"`
	DeliveryWindow     string `gorm:"type:varchar(100)"`
	DeliveryNotes      string `gorm:"type:text"`

	ProfileCompleted bool `gorm:"not null;default:false"`

	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
