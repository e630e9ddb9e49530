package mockrepo

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository mocks repository.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

// NewMockCartRepository creates a mock bound to the test's lifecycle.
func NewMockCartRepository(t *testing.T) *MockCartRepository {
	m := &MockCartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.CartItem), args.Error(1)
}

func (m *MockCartRepository) Add(ctx context.Context, item *entity.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockCartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}

func (m *MockCartRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
