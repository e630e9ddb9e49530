package errors

import (
	"net/http"

	"fenix/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. User-facing messages are in Spanish, the
// platform's primary locale.
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"No se encontró el usuario",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Este email ya está registrado",
		"",
	)

	ErrUserCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_CREATION_FAILED",
		"Error al crear el usuario",
		"",
	)

	ErrUserUpdateFailed = NewBaseError(
		http.StatusInternalServerError,
		"USER_UPDATE_FAILED",
		"Error al actualizar el usuario",
		"",
	)

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email o contraseña incorrectos",
		"",
	)

	ErrAccountPending = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_PENDING",
		"Tu cuenta está pendiente de aprobación",
		"",
	)

	ErrAccountDisabled = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_DISABLED",
		"Tu cuenta está desactivada",
		"",
	)

	ErrAccountRejected = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_REJECTED",
		"Tu solicitud de cuenta no ha sido aprobada",
		"",
	)

	// Authorization-related errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"No tienes permisos para realizar esta acción",
		"",
	)

	// ErrSuperAdminImmutable guards the rule that no interactive path may
	// mutate a super_admin record; it only changes via direct database access.
	ErrSuperAdminImmutable = NewBaseError(
		http.StatusForbidden,
		"SUPER_ADMIN_IMMUTABLE",
		"Las cuentas super admin solo pueden modificarse por código",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Los datos introducidos no son válidos",
		"",
	)

	ErrProfileIncomplete = NewBaseError(
		http.StatusBadRequest,
		"PROFILE_INCOMPLETE",
		"Completa tu perfil operativo antes de realizar pedidos",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusBadRequest,
		"CART_EMPTY",
		"Tu carrito está vacío",
		"",
	)

	// Catalog-related errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"No se encontró el producto",
		"",
	)

	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"No se encontró el pedido",
		"",
	)

	ErrInvalidStatusTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_STATUS_TRANSITION",
		"Transición de estado no permitida",
		"",
	)

	ErrRecurringOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"RECURRING_ORDER_NOT_FOUND",
		"No se encontró el pedido recurrente",
		"",
	)

	ErrNotificationNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTIFICATION_NOT_FOUND",
		"No se encontró la notificación",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Error en la transacción de base de datos",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Error interno del sistema",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"No se encontró el recurso",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Conflicto de recursos",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Error al ejecutar la consulta"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
