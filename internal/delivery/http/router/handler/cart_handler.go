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

// CartHandler holds dependencies for shopping cart handlers.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: logger,
	}
}

// View returns the requester's cart.
func (h *CartHandler) View(c echo.Context) error {
	cart, err := h.uc.ViewCart(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "")
}

type cartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// AddItem accumulates quantity onto a cart line.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	cart, err := h.uc.AddItem(c.Request().Context(), middleware.CurrentUser(c), productID, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Producto añadido al carrito")
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := h.uc.SetItemQuantity(c.Request().Context(), middleware.CurrentUser(c), productID, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Carrito actualizado")
}

// RemoveItem drops one line from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), middleware.CurrentUser(c), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cart, "Producto eliminado del carrito")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.uc.ClearCart(c.Request().Context(), middleware.CurrentUser(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Carrito vaciado")
}
