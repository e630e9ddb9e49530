package mockrepo

import (
	"context"
	"testing"
	"time"

	"fenix/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRecurringOrderRepository mocks repository.RecurringOrderRepository.
type MockRecurringOrderRepository struct {
	mock.Mock
}

// NewMockRecurringOrderRepository creates a mock bound to the test's lifecycle.
func NewMockRecurringOrderRepository(t *testing.T) *MockRecurringOrderRepository {
	m := &MockRecurringOrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRecurringOrderRepository) Create(ctx context.Context, ro *entity.RecurringOrder) error {
	return m.Called(ctx, ro).Error(0)
}

func (m *MockRecurringOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.RecurringOrder), args.Error(1)
}

func (m *MockRecurringOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.RecurringOrder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RecurringOrder), args.Error(1)
}

func (m *MockRecurringOrderRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*entity.RecurringOrder, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.RecurringOrder), args.Error(1)
}

func (m *MockRecurringOrderRepository) Update(ctx context.Context, ro *entity.RecurringOrder) error {
	return m.Called(ctx, ro).Error(0)
}

func (m *MockRecurringOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
