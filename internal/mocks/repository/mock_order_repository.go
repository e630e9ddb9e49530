package mockrepo

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository mocks repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

// NewMockOrderRepository creates a mock bound to the test's lifecycle.
func NewMockOrderRepository(t *testing.T) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) ClaimStockDeduction(ctx context.Context, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID)

	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) AppendEvent(ctx context.Context, event *entity.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockOrderRepository) AddDocument(ctx context.Context, doc *entity.OrderDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockOrderRepository) ListDocuments(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderDocument, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.OrderDocument), args.Error(1)
}
