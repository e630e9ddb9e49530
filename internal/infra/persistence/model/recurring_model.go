package model

import (
	"time"

	"github.com/google/uuid"
)

// RecurringOrderModel mirrors the 'recurring_orders' table.
type RecurringOrderModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive            bool      `gorm:"not null;default:true;index"`
	Frequency           string    `gorm:"type:varchar(10);not null"`
	StartDate           time.Time `gorm:"not null"`
	EndDate             *time.Time
	NextRunAt           *time.Time `gorm:"index"`
	DeliveryWindowHours int        `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Items []RecurringOrderItemModel `gorm:"foreignKey:RecurringOrderID"`
}

// TableName explicitly sets the table name for GORM.
func (RecurringOrderModel) TableName() string {
	return "recurring_orders"
}

// RecurringOrderItemModel mirrors the 'recurring_order_items' table.
type RecurringOrderItemModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RecurringOrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID `gorm:"type:uuid;not null"`
	ProductNameES     string    `gorm:"type:varchar(200);not null"`
	ProductNameZhHans string    `gorm:"type:varchar(200)"`
	Quantity          int       `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (RecurringOrderItemModel) TableName() string {
	return "recurring_order_items"
}
