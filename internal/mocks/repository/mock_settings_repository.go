package mockrepo

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockSettingsRepository mocks repository.SettingsRepository.
type MockSettingsRepository struct {
	mock.Mock
}

// NewMockSettingsRepository creates a mock bound to the test's lifecycle.
func NewMockSettingsRepository(t *testing.T) *MockSettingsRepository {
	m := &MockSettingsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entity.PlatformSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.PlatformSettings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, settings *entity.PlatformSettings) error {
	return m.Called(ctx, settings).Error(0)
}
