package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// ErrRecurringOrderNotFound is returned when a recurring order does not
// exist or is not visible to the requesting customer.
var ErrRecurringOrderNotFound = errors.New("recurring order not found")

// RecurringOrderRepository stores recurring order templates.
type RecurringOrderRepository interface {
	Create(ctx context.Context, ro *entity.RecurringOrder) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringOrder, error)

	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.RecurringOrder, error)

	// ListDue returns active recurring orders whose next_run_at is at or
	// before now, for the scheduler to materialize into real orders.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*entity.RecurringOrder, error)

	Update(ctx context.Context, ro *entity.RecurringOrder) error

	Delete(ctx context.Context, id uuid.UUID) error
}
