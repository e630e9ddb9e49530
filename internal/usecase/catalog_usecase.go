package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fenix/internal/domain/entity"
)

// ProductInput carries the editable product fields.
type ProductInput struct {
	NameES            string
	NameZhHans        string
	DescriptionES     string
	DescriptionZhHans string
	Price             decimal.Decimal
	IsActive          bool
	StockAvailable    int
	StockMinThreshold int
}

// ListProductsInput narrows product listings.
type ListProductsInput struct {
	Search     string
	OnlyActive bool
	Limit      int
	Offset     int
}

// ListProductsOutput returns one page of products plus the total count.
type ListProductsOutput struct {
	Products []*entity.Product
	Total    int64
}

// CatalogUsecase defines the interface for product catalog operations.
// Mutations require a staff requester; reads are open to active accounts.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, requester *entity.User, input *ListProductsInput) (*ListProductsOutput, error)
	GetProduct(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.Product, error)

	CreateProduct(ctx context.Context, requester *entity.User, input *ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, requester *entity.User, id uuid.UUID, input *ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, requester *entity.User, id uuid.UUID) error

	// AdjustStock sets the absolute available stock of a product.
	AdjustStock(ctx context.Context, requester *entity.User, id uuid.UUID, stock int) (*entity.Product, error)
}
