package handler

import (
	"log/slog"
	"net/http"
	"time"

	"fenix/internal/delivery/http/middleware"
	"fenix/internal/delivery/http/response"
	"fenix/internal/domain/entity"
	"fenix/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RecurringHandler holds dependencies for recurring order template handlers.
type RecurringHandler struct {
	uc     usecase.RecurringUsecase
	logger *slog.Logger
}

// NewRecurringHandler is the constructor for RecurringHandler, injected by Fx.
func NewRecurringHandler(uc usecase.RecurringUsecase, logger *slog.Logger) *RecurringHandler {
	return &RecurringHandler{
		uc:     uc,
		logger: logger,
	}
}

type recurringItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type recurringOrderRequest struct {
	Frequency           string                 `json:"frequency" validate:"required"`
	StartDate           time.Time              `json:"startDate" validate:"required"`
	EndDate             *time.Time             `json:"endDate"`
	DeliveryWindowHours int                    `json:"deliveryWindowHours" validate:"min=0"`
	Items               []recurringItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r *recurringOrderRequest) toInput() (*usecase.RecurringOrderInput, error) {
	items := make([]usecase.RecurringItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, usecase.RecurringItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	return &usecase.RecurringOrderInput{
		Frequency:           entity.Frequency(r.Frequency),
		StartDate:           r.StartDate,
		EndDate:             r.EndDate,
		DeliveryWindowHours: r.DeliveryWindowHours,
		Items:               items,
	}, nil
}

// Create adds a new recurring order template.
func (h *RecurringHandler) Create(c echo.Context) error {
	var req recurringOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recurring order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	template, err := h.uc.Create(c.Request().Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, template, "Pedido recurrente creado")
}

// List returns the requester's recurring order templates.
func (h *RecurringHandler) List(c echo.Context) error {
	templates, err := h.uc.List(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, templates, "")
}

// Get returns one recurring order template.
func (h *RecurringHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid recurring order id")
	}

	template, err := h.uc.Get(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, template, "")
}

// Update replaces the editable fields of a template.
func (h *RecurringHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid recurring order id")
	}

	var req recurringOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recurring order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	template, err := h.uc.Update(c.Request().Context(), middleware.CurrentUser(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, template, "Pedido recurrente actualizado")
}

// Delete removes a recurring order template.
func (h *RecurringHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid recurring order id")
	}

	if err := h.uc.Delete(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Pedido recurrente eliminado")
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive pauses or resumes a template.
func (h *RecurringHandler) SetActive(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid recurring order id")
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	template, err := h.uc.SetActive(c.Request().Context(), middleware.CurrentUser(c), id, req.Active)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Pedido recurrente pausado"
	if req.Active {
		message = "Pedido recurrente reanudado"
	}

	return response.Success(c, http.StatusOK, template, message)
}
