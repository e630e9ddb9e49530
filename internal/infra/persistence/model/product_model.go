package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	NameES            string          `gorm:"type:varchar(200);not null"`
	NameZhHans        string          `gorm:"type:varchar(200)"`
	DescriptionES     string          `gorm:"type:text"`
	DescriptionZhHans string          `gorm:"type:text"`
	Price             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsActive          bool            `gorm:"not null;default:true;index"`
	StockAvailable    int             `gorm:"not null;default:0"`
	StockMinThreshold int             `gorm:"not null;default:0"`
	StockStatus       string          `gorm:"type:varchar(10);not null;default:'out'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// CartItemModel mirrors the 'cart_items' table. One row per (user, product).
type CartItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartItemModel) TableName() string {
	return "cart_items"
}
