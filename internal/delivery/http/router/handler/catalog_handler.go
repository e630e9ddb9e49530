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
	"github.com/shopspring/decimal"
)

// CatalogHandler holds dependencies for product catalog handlers.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

type productRequest struct {
	NameES            string `json:"nameEs" validate:"required"`
	NameZhHans        string `json:"nameZhHans"`
	DescriptionES     string `json:"descriptionEs"`
	DescriptionZhHans string `json:"descriptionZhHans"`
	Price             string `json:"price" validate:"required"`
	IsActive          bool   `json:"isActive"`
	StockAvailable    int    `json:"stockAvailable" validate:"min=0"`
	StockMinThreshold int    `json:"stockMinThreshold" validate:"min=0"`
}

func (r *productRequest) toInput() (*usecase.ProductInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return nil, err
	}

	return &usecase.ProductInput{
		NameES:            r.NameES,
		NameZhHans:        r.NameZhHans,
		DescriptionES:     r.DescriptionES,
		DescriptionZhHans: r.DescriptionZhHans,
		Price:             price,
		IsActive:          r.IsActive,
		StockAvailable:    r.StockAvailable,
		StockMinThreshold: r.StockMinThreshold,
	}, nil
}

// List returns one page of products.
func (h *CatalogHandler) List(c echo.Context) error {
	input := &usecase.ListProductsInput{
		Search:     c.QueryParam("search"),
		OnlyActive: c.QueryParam("onlyActive") == "true",
		Limit:      intQueryParam(c, "limit", 50),
		Offset:     intQueryParam(c, "offset", 0),
	}

	output, err := h.uc.ListProducts(c.Request().Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"products": output.Products,
		"total":    output.Total,
	}, "")
}

// Get returns a single product.
func (h *CatalogHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

// Create adds a new product to the catalog.
func (h *CatalogHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return response.BindingError(c, "INVALID_PRICE", "Invalid price format")
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), middleware.CurrentUser(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Producto creado")
}

// Update replaces the editable fields of a product.
func (h *CatalogHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := req.toInput()
	if err != nil {
		return response.BindingError(c, "INVALID_PRICE", "Invalid price format")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), middleware.CurrentUser(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Producto actualizado")
}

// Delete removes a product from the catalog.
func (h *CatalogHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Producto eliminado")
}

type adjustStockRequest struct {
	Stock int `json:"stock" validate:"min=0"`
}

// AdjustStock sets the absolute available stock of a product.
func (h *CatalogHandler) AdjustStock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_ID", "Invalid product id")
	}

	var req adjustStockRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stock input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.uc.AdjustStock(c.Request().Context(), middleware.CurrentUser(c), id, req.Stock)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Stock actualizado")
}
