package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// RecurringItemInput is one product line of a recurring order template.
type RecurringItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// RecurringOrderInput carries the editable template fields.
type RecurringOrderInput struct {
	Frequency           entity.Frequency
	StartDate           time.Time
	EndDate             *time.Time
	DeliveryWindowHours int
	Items               []RecurringItemInput
}

// RecurringUsecase defines the interface for recurring order templates and
// their scheduled materialization into real orders.
type RecurringUsecase interface {
	Create(ctx context.Context, requester *entity.User, input *RecurringOrderInput) (*entity.RecurringOrder, error)
	List(ctx context.Context, requester *entity.User) ([]*entity.RecurringOrder, error)
	Get(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.RecurringOrder, error)
	Update(ctx context.Context, requester *entity.User, id uuid.UUID, input *RecurringOrderInput) (*entity.RecurringOrder, error)
	Delete(ctx context.Context, requester *entity.User, id uuid.UUID) error

	// SetActive pauses or resumes a template without editing it.
	SetActive(ctx context.Context, requester *entity.User, id uuid.UUID, active bool) (*entity.RecurringOrder, error)

	// RunDue materializes every due template into a new order and advances
	// its schedule. It returns how many orders were created.
	RunDue(ctx context.Context, now time.Time) (int, error)
}
