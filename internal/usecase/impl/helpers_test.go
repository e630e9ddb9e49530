package impl

import (
	"io"
	"log/slog"
	"testing"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newActiveUser(role entity.Role) *entity.User {
	return &entity.User{
		ID:     uuid.New(),
		Email:  "user@example.com",
		Role:   role,
		Status: entity.UserStatusActive,
	}
}

// newCompleteCustomer returns an active customer whose operative profile
// passes the completeness gate.
func newCompleteCustomer() *entity.User {
	u := newActiveUser(entity.RoleUser)
	u.DeliveryPhone = "+34 600 000 000"
	u.FiscalAddress = "Calle Mayor 1"
	u.FiscalCity = "Madrid"
	u.FiscalProvince = "Madrid"
	u.FiscalPostalCode = "28001"
	u.DeliveryType = "standard"
	u.DeliveryAddress = "Calle Mayor 1"
	u.DeliveryCity = "Madrid"
	u.DeliveryProvince = "Madrid"
	u.DeliveryPostalCode = "28001"
	u.RefreshProfileCompleted()

	return u
}

// requireErrorCode asserts that err carries the given business error code.
func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, code, appErr.ErrorCode())
}
