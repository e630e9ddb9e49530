package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"fenix/internal/delivery/http/response"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		repository.ErrUserNotFound,
		repository.ErrProductNotFound,
		repository.ErrOrderNotFound,
		repository.ErrNotificationNotFound,
		repository.ErrRecurringOrderNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Try to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPCode(), response.Response{
			Success: false,
			Code:    appErr.HTTPCode(),
			Message: appErr.Message(),
			Error: &response.ErrorInfo{
				Code:    appErr.ErrorCode(),
				Details: appErr.Details(),
			},
		})

		return
	}

	// Repository sentinels map to 404 without further ceremony.
	if isNotFound(err) {
		c.JSON(http.StatusNotFound, response.Response{
			Success: false,
			Code:    http.StatusNotFound,
			Message: "Recurso no encontrado",
			Error: &response.ErrorInfo{
				Code:    "NOT_FOUND",
				Details: err.Error(),
			},
		})

		return
	}

	// Check if it's Echo's HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprintf("%v", httpErr.Message)
		c.JSON(httpErr.Code, response.Response{
			Success: false,
			Code:    httpErr.Code,
			Message: message,
			Error: &response.ErrorInfo{
				Code:    "HTTP_ERROR",
				Details: message,
			},
		})

		return
	}

	// Default to internal error, log and return a generic message.
	m.logger.Error("Unhandled error",
		"error", err.Error(),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	c.JSON(http.StatusInternalServerError, response.Response{
		Success: false,
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
		Error: &response.ErrorInfo{
			Code: "INTERNAL_ERROR",
		},
	})
}
