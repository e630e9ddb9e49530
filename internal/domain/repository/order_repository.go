package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter narrows order listings.
type OrderFilter struct {
	CustomerID *uuid.UUID
	Status     entity.OrderStatus // zero value means any status
	Limit      int
	Offset     int
}

// OrderRepository defines the persistence operations for orders, their line
// items, audit events and documents.
type OrderRepository interface {
	// Create persists a new order with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with items and events preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByIDForUpdate retrieves an order holding a row lock for the
	// duration of the surrounding transaction, serializing concurrent
	// status transitions on the same order.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)

	// Update persists the mutable order fields (status, ETA window,
	// delivered_at). Line items are immutable after creation.
	Update(ctx context.Context, order *entity.Order) error

	// ClaimStockDeduction atomically flips stock_deducted from false to
	// true. It reports whether this call won the claim; a false return
	// means the deduction already happened and must not be repeated.
	ClaimStockDeduction(ctx context.Context, orderID uuid.UUID) (bool, error)

	// AppendEvent adds an immutable audit event to the order's trail.
	AppendEvent(ctx context.Context, event *entity.OrderEvent) error

	// AddDocument attaches document metadata to an order.
	AddDocument(ctx context.Context, doc *entity.OrderDocument) error

	ListDocuments(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderDocument, error)
}
