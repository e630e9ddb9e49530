package repository

import (
	"context"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// CartRepository stores per-user shopping carts. A cart holds at most one
// row per (user, product); adding an existing product accumulates quantity.
type CartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error)

	// Add inserts the item or, when the product is already in the cart,
	// increments its quantity by item.Quantity.
	Add(ctx context.Context, item *entity.CartItem) error

	// SetQuantity replaces the quantity of an existing cart row. A
	// quantity of zero removes the row.
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error

	Remove(ctx context.Context, userID, productID uuid.UUID) error

	// Clear empties the user's cart, typically after checkout.
	Clear(ctx context.Context, userID uuid.UUID) error
}
