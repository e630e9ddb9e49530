package mockrepo

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockAuditRepository mocks repository.AuditRepository.
type MockAuditRepository struct {
	mock.Mock
}

// NewMockAuditRepository creates a mock bound to the test's lifecycle.
func NewMockAuditRepository(t *testing.T) *MockAuditRepository {
	m := &MockAuditRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuditRepository) Append(ctx context.Context, log *entity.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditLog, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}

	return args.Get(0).([]*entity.AuditLog), args.Get(1).(int64), args.Error(2)
}
