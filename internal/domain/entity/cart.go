package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line of a customer's server-side cart.
// The cart is ephemeral: checkout consumes it and nothing else references it.
type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
