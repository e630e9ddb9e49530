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

// OrderHandler holds dependencies for order lifecycle handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// Checkout converts the requester's cart into a new order.
func (h *OrderHandler) Checkout(c echo.Context) error {
	output, err := h.uc.Checkout(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"order":    output.Order,
		"warnings": output.Warnings,
	}, "Pedido creado")
}

// List returns one page of orders visible to the requester.
func (h *OrderHandler) List(c echo.Context) error {
	input := &usecase.ListOrdersInput{
		Status: c.QueryParam("status"),
		Limit:  intQueryParam(c, "limit", 50),
		Offset: intQueryParam(c, "offset", 0),
	}
	if raw := c.QueryParam("customerId"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			return response.BindingError(c, "INVALID_ID", "Invalid customer id")
		}
		input.CustomerID = &customerID
	}

	output, err := h.uc.ListOrders(c.Request().Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"orders": output.Orders,
		"total":  output.Total,
	}, "")
}

// Get returns one order.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid order id")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

type applyStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

// ApplyStatus performs one lifecycle transition on an order.
func (h *OrderHandler) ApplyStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid order id")
	}

	var req applyStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.ApplyStatus(c.Request().Context(), middleware.CurrentUser(c), &usecase.ApplyStatusInput{
		OrderID: id,
		Status:  entity.OrderStatus(req.Status),
		Note:    req.Note,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"order":         output.Order,
		"stockDeducted": output.StockDeducted,
		"stockWarnings": output.StockWarnings,
	}, "Estado actualizado")
}

type updateETARequest struct {
	ETAStart time.Time `json:"etaStart" validate:"required"`
	ETAEnd   time.Time `json:"etaEnd" validate:"required"`
}

// UpdateETA replaces the delivery window of an order.
func (h *OrderHandler) UpdateETA(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid order id")
	}

	var req updateETARequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid ETA input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.uc.UpdateETA(c.Request().Context(), middleware.CurrentUser(c), &usecase.UpdateETAInput{
		OrderID:  id,
		ETAStart: req.ETAStart,
		ETAEnd:   req.ETAEnd,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Ventana de entrega actualizada")
}

type uploadDocumentRequest struct {
	DocumentType string `json:"documentType" validate:"required"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	FilePath     string `json:"filePath" validate:"required"`
}

// UploadDocument attaches document metadata to an order.
func (h *OrderHandler) UploadDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid order id")
	}

	var req uploadDocumentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid document input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	document, err := h.uc.UploadDocument(c.Request().Context(), middleware.CurrentUser(c), &usecase.UploadDocumentInput{
		OrderID:      id,
		DocumentType: entity.OrderDocumentType(req.DocumentType),
		Title:        req.Title,
		Description:  req.Description,
		FilePath:     req.FilePath,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, document, "Documento adjuntado")
}

// ListDocuments returns the documents attached to an order.
func (h *OrderHandler) ListDocuments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid order id")
	}

	documents, err := h.uc.ListDocuments(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, documents, "")
}
