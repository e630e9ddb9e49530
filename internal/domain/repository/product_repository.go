package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// ErrProductNotFound is returned when a product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Search     string // matches either locale's name, case-insensitive
	OnlyActive bool
	Limit      int
	Offset     int
}

// ProductRepository defines the persistence operations for catalog products.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDForUpdate retrieves a product holding a row lock for the
	// duration of the surrounding transaction. Used by the stock deduction
	// path to serialize concurrent decrements.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)

	Create(ctx context.Context, product *entity.Product) error

	// Update persists the product; the derived stock status is recomputed
	// before the write.
	Update(ctx context.Context, product *entity.Product) error

	Delete(ctx context.Context, id uuid.UUID) error
}
