package handler

import (
	"log/slog"
	"net/http"

	"fenix/internal/delivery/http/middleware"
	"fenix/internal/delivery/http/response"
	"fenix/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SettingsHandler holds dependencies for platform settings and audit handlers.
type SettingsHandler struct {
	uc     usecase.SettingsUsecase
	logger *slog.Logger
}

// NewSettingsHandler is the constructor for SettingsHandler, injected by Fx.
func NewSettingsHandler(uc usecase.SettingsUsecase, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		uc:     uc,
		logger: logger,
	}
}

// Get returns the platform settings.
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "")
}

type settingsRequest struct {
	DefaultLanguage            string `json:"defaultLanguage" validate:"required"`
	EmailFrom                  string `json:"emailFrom" validate:"required,email"`
	EmailFromName              string `json:"emailFromName"`
	OrderNotificationEmail     string `json:"orderNotificationEmail" validate:"required,email"`
	DefaultDeliveryWindowHours int    `json:"defaultDeliveryWindowHours" validate:"min=0"`
}

// Update replaces the platform settings.
func (h *SettingsHandler) Update(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	settings, err := h.uc.Update(c.Request().Context(), middleware.CurrentUser(c), &usecase.SettingsInput{
		DefaultLanguage:            req.DefaultLanguage,
		EmailFrom:                  req.EmailFrom,
		EmailFromName:              req.EmailFromName,
		OrderNotificationEmail:     req.OrderNotificationEmail,
		DefaultDeliveryWindowHours: req.DefaultDeliveryWindowHours,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, settings, "Configuración actualizada")
}

// ListAudit returns one page of the audit trail.
func (h *SettingsHandler) ListAudit(c echo.Context) error {
	input := &usecase.ListAuditInput{
		Action: c.QueryParam("action"),
		Limit:  intQueryParam(c, "limit", 50),
		Offset: intQueryParam(c, "offset", 0),
	}
	if raw := c.QueryParam("actorId"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			return response.BindingError(c, "INVALID_ID", "Invalid actor id")
		}
		input.ActorID = &actorID
	}
	if raw := c.QueryParam("targetId"); raw != "" {
		targetID, err := uuid.Parse(raw)
		if err != nil {
			return response.BindingError(c, "INVALID_ID", "Invalid target id")
		}
		input.TargetID = &targetID
	}

	output, err := h.uc.ListAudit(c.Request().Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"logs":  output.Logs,
		"total": output.Total,
	}, "")
}
