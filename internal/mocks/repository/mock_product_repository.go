package mockrepo

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository mocks repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

// NewMockProductRepository creates a mock bound to the test's lifecycle.
func NewMockProductRepository(t *testing.T) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
