package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status        string          `gorm:"type:varchar(20);not null;default:'new';index"`
	ETAStart      *time.Time      `gorm:"column:eta_start"`
	ETAEnd        *time.Time      `gorm:"column:eta_end"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StockDeducted bool            `gorm:"not null;default:false"`
	DeliveredAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items     []OrderItemModel     `gorm:"foreignKey:OrderID"`
	Events    []OrderEventModel    `gorm:"foreignKey:OrderID"`
	Documents []OrderDocumentModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table. Product fields are
// snapshotted at order time so catalog edits never rewrite history.
type OrderItemModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	ProductNameES     string          `gorm:"type:varchar(200);not null"`
	ProductNameZhHans string          `gorm:"type:varchar(200)"`
	Quantity          int             `gorm:"not null"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	LineTotal         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// OrderEventModel mirrors the 'order_events' table, the append-only status trail.
type OrderEventModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:varchar(20);not null"`
	Note      string    `gorm:"type:text"`
	CreatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderEventModel) TableName() string {
	return "order_events"
}

// OrderDocumentModel mirrors the 'order_documents' table.
type OrderDocumentModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentType string    `gorm:"type:varchar(20);not null"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Description  string    `gorm:"type:text"`
	FilePath     string    `gorm:"type:varchar(500);not null"`
	UploadedBy   uuid.UUID `gorm:"type:uuid"`
	UploadedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderDocumentModel) TableName() string {
	return "order_documents"
}
