package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fenix/internal/domain/entity"
)

// CartLine is one cart row joined with its live product.
type CartLine struct {
	Item      *entity.CartItem
	Product   *entity.Product
	LineTotal decimal.Decimal
}

// CartOutput is the customer's cart with per-line and grand totals.
type CartOutput struct {
	Lines []*CartLine
	Total decimal.Decimal
}

// CartUsecase defines the interface for the customer shopping cart.
type CartUsecase interface {
	ViewCart(ctx context.Context, requester *entity.User) (*CartOutput, error)

	// AddItem puts quantity units of a product into the cart, accumulating
	// onto an existing line. Only active products can be added.
	AddItem(ctx context.Context, requester *entity.User, productID uuid.UUID, quantity int) (*CartOutput, error)

	// SetItemQuantity replaces a line's quantity; zero removes the line.
	SetItemQuantity(ctx context.Context, requester *entity.User, productID uuid.UUID, quantity int) (*CartOutput, error)

	RemoveItem(ctx context.Context, requester *entity.User, productID uuid.UUID) (*CartOutput, error)

	ClearCart(ctx context.Context, requester *entity.User) error
}
