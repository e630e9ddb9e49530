package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockStatus is the derived inventory indicator of a product.
type StockStatus string

const (
	// StockOK means stock is above the minimum threshold.
	StockOK StockStatus = "ok"
	// StockLow means stock is at or below the minimum threshold.
	StockLow StockStatus = "low"
	// StockOut means no stock is available.
	StockOut StockStatus = "out"
)

// String returns the string representation of the StockStatus.
func (s StockStatus) String() string {
	return string(s)
}

// Product is a catalog item with bilingual naming and a derived stock status.
type Product struct {
	ID                uuid.UUID
	NameES            string
	NameZhHans        string
	DescriptionES     string
	DescriptionZhHans string
	Price             decimal.Decimal
	IsActive          bool
	StockAvailable    int
	StockMinThreshold int

	// StockStatus is derived from StockAvailable vs StockMinThreshold.
	// It is recomputed on every save and never set by callers.
	StockStatus StockStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Name returns the product name in the requested locale.
func (p *Product) Name(lang Language) string {
	if lang == LanguageZhHans && p.NameZhHans != "" {
		return p.NameZhHans
	}

	return p.NameES
}

// RefreshStockStatus recomputes the derived StockStatus.
// The persistence path calls this on every save.
func (p *Product) RefreshStockStatus() {
	switch {
	case p.StockAvailable <= 0:
		p.StockStatus = StockOut
	case p.StockAvailable <= p.StockMinThreshold:
		p.StockStatus = StockLow
	default:
		p.StockStatus = StockOK
	}
}
