package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// CheckoutOutput returns the created order plus any stock warnings produced
// while snapshotting the cart.
type CheckoutOutput struct {
	Order    *entity.Order
	Warnings []string
}

// ListOrdersInput narrows order listings. Customers are always pinned to
// their own orders regardless of the CustomerID field.
type ListOrdersInput struct {
	CustomerID *uuid.UUID
	Status     string
	Limit      int
	Offset     int
}

// ListOrdersOutput returns one page of orders plus the total count.
type ListOrdersOutput struct {
	Orders []*entity.Order
	Total  int64
}

// ApplyStatusInput drives one lifecycle transition.
type ApplyStatusInput struct {
	OrderID uuid.UUID
	Status  entity.OrderStatus
	Note    string
}

// UpdateETAInput replaces an order's delivery window.
type UpdateETAInput struct {
	OrderID  uuid.UUID
	ETAStart time.Time
	ETAEnd   time.Time
}

// UploadDocumentInput attaches document metadata to an order.
type UploadDocumentInput struct {
	OrderID      uuid.UUID
	DocumentType entity.OrderDocumentType
	Title        string
	Description  string
	FilePath     string
}

// ApplyStatusOutput reports the transition result. StockWarnings is non-empty
// when the deduction had to clamp some products at zero.
type ApplyStatusOutput struct {
	Order         *entity.Order
	StockDeducted bool
	StockWarnings []string
}

// OrderUsecase defines the interface for order lifecycle operations.
type OrderUsecase interface {
	// Checkout converts the requester's cart into a new order. It fails
	// when the operative profile is incomplete or the cart is empty.
	Checkout(ctx context.Context, requester *entity.User) (*CheckoutOutput, error)

	// GetOrder loads one order. Customers only see their own.
	GetOrder(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.Order, error)

	ListOrders(ctx context.Context, requester *entity.User, input *ListOrdersInput) (*ListOrdersOutput, error)

	// ApplyStatus performs one lifecycle transition. Entering preparing
	// deducts stock exactly once over the order's lifetime.
	ApplyStatus(ctx context.Context, requester *entity.User, input *ApplyStatusInput) (*ApplyStatusOutput, error)

	// UpdateETA replaces the delivery window and notifies the customer.
	UpdateETA(ctx context.Context, requester *entity.User, input *UpdateETAInput) (*entity.Order, error)

	// FlagLateOrders notifies customers of undelivered orders whose ETA
	// window has passed. It returns how many orders were flagged.
	FlagLateOrders(ctx context.Context, now time.Time) (int, error)

	UploadDocument(ctx context.Context, requester *entity.User, input *UploadDocumentInput) (*entity.OrderDocument, error)
	ListDocuments(ctx context.Context, requester *entity.User, orderID uuid.UUID) ([]*entity.OrderDocument, error)
}
