// Package mocksvc provides hand-maintained testify mocks for the domain
// service interfaces.
package mocksvc

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock bound to the test's lifecycle.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock bound to the test's lifecycle.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateToken(userID uuid.UUID, role entity.Role) (string, error) {
	args := m.Called(userID, role)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(token string) (*service.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

// MockMailer mocks service.Mailer.
type MockMailer struct {
	mock.Mock
}

// NewMockMailer creates a mock bound to the test's lifecycle.
func NewMockMailer(t *testing.T) *MockMailer {
	m := &MockMailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMailer) Send(ctx context.Context, email *service.Email) error {
	return m.Called(ctx, email).Error(0)
}

// MockWhatsAppSender mocks service.WhatsAppSender.
type MockWhatsAppSender struct {
	mock.Mock
}

// NewMockWhatsAppSender creates a mock bound to the test's lifecycle.
func NewMockWhatsAppSender(t *testing.T) *MockWhatsAppSender {
	m := &MockWhatsAppSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockWhatsAppSender) SendText(ctx context.Context, recipient, message string) error {
	return m.Called(ctx, recipient, message).Error(0)
}
