package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusNew is the initial state of every order.
	OrderStatusNew OrderStatus = "new"
	// OrderStatusConfirmed means staff accepted the order.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusPreparing means fulfillment started; entering it deducts stock once.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusOutForDelivery means the order left the warehouse.
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	// OrderStatusDelivered is terminal; entering it stamps DeliveredAt.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is terminal and reachable from any non-terminal state.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// statusRank orders the linear fulfillment path. Cancelled sits outside it.
var statusRank = map[OrderStatus]int{
	OrderStatusNew:            0,
	OrderStatusConfirmed:      1,
	OrderStatusPreparing:      2,
	OrderStatusOutForDelivery: 3,
	OrderStatusDelivered:      4,
}

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]

	return ok
}

// IsTerminal reports whether no further transitions may leave this state.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransition reports whether an order may move from s to next.
// Allowed moves: staying in place (a no-op write), any forward move along the
// linear path, and cancelling from any non-terminal state.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	if next == s {
		return true
	}
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}

	return statusRank[next] > statusRank[s]
}

// Event returns the notification event emitted when an order enters this
// status, or empty when the status change is silent (preparing).
func (s OrderStatus) Event() NotificationEvent {
	switch s {
	case OrderStatusNew:
		return EventOrderCreated
	case OrderStatusConfirmed:
		return EventOrderConfirmed
	case OrderStatusOutForDelivery:
		return EventOrderOutForDelivery
	case OrderStatusDelivered:
		return EventOrderDelivered
	case OrderStatusCancelled:
		return EventOrderCancelled
	default:
		return ""
	}
}

// Order is a customer's purchase request.
type Order struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	Status      OrderStatus
	ETAStart    *time.Time
	ETAEnd      *time.Time
	TotalAmount decimal.Decimal

	// StockDeducted latches true the first time the order enters preparing
	// and is never reset.
	StockDeducted bool

	DeliveredAt *time.Time
	Items       []*OrderItem
	Events      []*OrderEvent
	Documents   []*OrderDocument
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem is a line item holding a snapshot of the product at order time.
type OrderItem struct {
	ID                uuid.UUID
	OrderID           uuid.UUID
	ProductID         uuid.UUID
	ProductNameES     string
	ProductNameZhHans string
	Quantity          int
	UnitPrice         decimal.Decimal
	LineTotal         decimal.Decimal
}

// ComputeLineTotal recomputes LineTotal as unit price times quantity.
// The persistence path calls this on every save.
func (it *OrderItem) ComputeLineTotal() {
	it.LineTotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// ComputeTotal sums the line totals of all items.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal)
	}

	return total
}

// OrderEvent is an append-only audit record of a status change.
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Status    OrderStatus
	Note      string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}

// OrderDocumentType classifies an uploaded order document.
type OrderDocumentType string

const (
	// DocTypeInvoice is a customer invoice.
	DocTypeInvoice OrderDocumentType = "invoice"
	// DocTypeReceipt is a payment receipt.
	DocTypeReceipt OrderDocumentType = "receipt"
	// DocTypeShipment is a shipping manifest.
	DocTypeShipment OrderDocumentType = "shipment"
	// DocTypeOther covers everything else.
	DocTypeOther OrderDocumentType = "other"
)

// IsValid checks if the OrderDocumentType is a valid value.
func (t OrderDocumentType) IsValid() bool {
	switch t {
	case DocTypeInvoice, DocTypeReceipt, DocTypeShipment, DocTypeOther:
		return true
	default:
		return false
	}
}

// OrderDocument is metadata for a file attached to an order.
type OrderDocument struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	DocumentType OrderDocumentType
	Title        string
	Description  string
	FilePath     string
	UploadedBy   uuid.UUID
	UploadedAt   time.Time
}
