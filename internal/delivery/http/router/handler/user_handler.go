// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"fenix/internal/delivery/http/middleware"
	"fenix/internal/delivery/http/response"
	"fenix/internal/domain/entity"
	"fenix/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Language string `json:"language"`
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Language: req.Language,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sanitizeUser(output.User), "Cuenta registrada, pendiente de aprobación")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles the login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"accessToken": output.AccessToken,
		"user":        sanitizeUser(output.User),
	}, "Login successful")
}

// GetProfile returns the requester's own record plus missing profile fields.
func (h *UserHandler) GetProfile(c echo.Context) error {
	output, err := h.uc.GetProfile(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user":          sanitizeUser(output.User),
		"missingFields": output.MissingFields,
	}, "")
}

// UpdateProfile applies the requester's own profile edits.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), middleware.CurrentUser(c), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user":          sanitizeUser(output.User),
		"missingFields": output.MissingFields,
	}, "Perfil actualizado")
}

// ListUsers returns the accounts visible to the requester.
func (h *UserHandler) ListUsers(c echo.Context) error {
	input := &usecase.ListUsersInput{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
		Role:   c.QueryParam("role"),
		Limit:  intQueryParam(c, "limit", 50),
		Offset: intQueryParam(c, "offset", 0),
	}

	output, err := h.uc.ListUsers(c.Request().Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	users := make([]map[string]any, 0, len(output.Users))
	for _, user := range output.Users {
		users = append(users, sanitizeUser(user))
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"users": users,
		"total": output.Total,
	}, "")
}

// GetUser loads one account within the requester's visibility.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid user id")
	}

	user, err := h.uc.GetUser(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sanitizeUser(user), "")
}

// Approve activates a pending account.
func (h *UserHandler) Approve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid user id")
	}

	user, err := h.uc.ApproveUser(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sanitizeUser(user), "Cuenta aprobada")
}

// Reject declines a pending registration.
func (h *UserHandler) Reject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid user id")
	}

	user, err := h.uc.RejectUser(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sanitizeUser(user), "Cuenta rechazada")
}

// Disable soft-deletes an account.
func (h *UserHandler) Disable(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid user id")
	}

	if err := h.uc.DisableUser(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cuenta deshabilitada")
}

type assignRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// AssignRole changes the target's role.
func (h *UserHandler) AssignRole(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid user id")
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.AssignRole(c.Request().Context(), middleware.CurrentUser(c), id, entity.Role(req.Role))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sanitizeUser(user), "Rol asignado")
}

// sanitizeUser strips credentials before a user entity leaves the API.
func sanitizeUser(user *entity.User) map[string]any {
	if user == nil {
		return nil
	}

	return map[string]any{
		"id":               user.ID,
		"email":            user.Email,
		"fullName":         user.FullName,
		"role":             user.Role,
		"status":           user.Status,
		"language":         user.Language,
		"profileCompleted": user.ProfileCompleted,
		"companyPhone":     user.CompanyPhone,
		"deliveryPhone":    user.DeliveryPhone,
		"fiscalAddress":    user.FiscalAddress,
		"fiscalCity":       user.FiscalCity,
		"fiscalProvince":   user.FiscalProvince,
		"fiscalPostalCode": user.FiscalPostalCode,
		"country":          user.Country,
		"deliveryType":     user.DeliveryType,
		"deliveryAddress":  user.DeliveryAddress,
		"deliveryCity":     user.DeliveryCity,
		"deliveryProvince": user.DeliveryProvince,
		"deliveryPostal":   user.DeliveryPostalCode,
		"deliveryWindow":   user.DeliveryWindow,
		"deliveryNotes":    user.DeliveryNotes,
		"createdAt":        user.CreatedAt,
	}
}

// intQueryParam parses an integer query parameter with a fallback.
func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	var value int
	if err := echo.QueryParamsBinder(c).Int(name, &value).BindError(); err != nil {
		return fallback
	}

	return value
}
