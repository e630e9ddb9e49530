package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"
	"fenix/internal/usecase"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for cartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

// ViewCart returns the requester's cart joined with live product data.
func (srv *cartService) ViewCart(ctx context.Context, requester *entity.User) (*usecase.CartOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	return srv.buildCart(ctx, requester.ID)
}

// AddItem puts quantity units of an active product into the cart.
func (srv *cartService) AddItem(ctx context.Context, requester *entity.User, productID uuid.UUID, quantity int) (*usecase.CartOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}
	if quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must be positive")
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, repository.ErrProductNotFound
	}

	if err := srv.cartRepo.Add(ctx, &entity.CartItem{
		UserID:    requester.ID,
		ProductID: productID,
		Quantity:  quantity,
	}); err != nil {
		return nil, err
	}

	return srv.buildCart(ctx, requester.ID)
}

// SetItemQuantity replaces a line's quantity; zero removes the line.
func (srv *cartService) SetItemQuantity(ctx context.Context, requester *entity.User, productID uuid.UUID, quantity int) (*usecase.CartOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}
	if quantity < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("quantity must not be negative")
	}

	if err := srv.cartRepo.SetQuantity(ctx, requester.ID, productID, quantity); err != nil {
		return nil, err
	}

	return srv.buildCart(ctx, requester.ID)
}

// RemoveItem drops one product line from the cart.
func (srv *cartService) RemoveItem(ctx context.Context, requester *entity.User, productID uuid.UUID) (*usecase.CartOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	if err := srv.cartRepo.Remove(ctx, requester.ID, productID); err != nil {
		return nil, err
	}

	return srv.buildCart(ctx, requester.ID)
}

// ClearCart empties the requester's cart.
func (srv *cartService) ClearCart(ctx context.Context, requester *entity.User) error {
	if requester == nil {
		return domainerrors.ErrForbidden
	}

	return srv.cartRepo.Clear(ctx, requester.ID)
}

// buildCart joins cart rows with their products. Lines whose product
// vanished or went inactive are shown with a nil product so the client can
// prompt removal.
func (srv *cartService) buildCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	items, err := srv.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	output := &usecase.CartOutput{Total: decimal.Zero}
	for _, item := range items {
		line := &usecase.CartLine{Item: item, LineTotal: decimal.Zero}

		product, err := srv.productRepo.FindByID(ctx, item.ProductID)
		if err == nil && product.IsActive {
			line.Product = product
			line.LineTotal = product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			output.Total = output.Total.Add(line.LineTotal)
		}

		output.Lines = append(output.Lines, line)
	}

	return output, nil
}
