package impl

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/repository"
	mockrepo "fenix/internal/mocks/repository"
	"fenix/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCartService(t *testing.T) (usecase.CartUsecase, *mockrepo.MockCartRepository, *mockrepo.MockProductRepository) {
	cartRepo := mockrepo.NewMockCartRepository(t)
	productRepo := mockrepo.NewMockProductRepository(t)

	service := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Logger:      testLogger(),
	})

	return service, cartRepo, productRepo
}

func TestCartService_AddItem_InactiveProductRejected(t *testing.T) {
	service, _, productRepo := createTestCartService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	product := newTestProduct("Retirado", "9.99", 5)
	product.IsActive = false

	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	cart, err := service.AddItem(ctx, customer, product.ID, 2)

	assert.Nil(t, cart)
	assert.True(t, errors.Is(err, repository.ErrProductNotFound))
}

func TestCartService_AddItem_NonPositiveQuantityRejected(t *testing.T) {
	service, _, _ := createTestCartService(t)
	ctx := context.Background()

	cart, err := service.AddItem(ctx, newActiveUser(entity.RoleUser), uuid.New(), 0)

	assert.Nil(t, cart)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestCartService_ViewCart_ComputesTotals(t *testing.T) {
	service, cartRepo, productRepo := createTestCartService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	oil := newTestProduct("Aceite", "12.50", 10)
	rice := newTestProduct("Arroz", "2.00", 10)

	cartRepo.On("ListByUser", ctx, customer.ID).Return([]*entity.CartItem{
		{UserID: customer.ID, ProductID: oil.ID, Quantity: 2},
		{UserID: customer.ID, ProductID: rice.ID, Quantity: 3},
	}, nil)
	productRepo.On("FindByID", ctx, oil.ID).Return(oil, nil)
	productRepo.On("FindByID", ctx, rice.ID).Return(rice, nil)

	cart, err := service.ViewCart(ctx, customer)

	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "25.00", cart.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "6.00", cart.Lines[1].LineTotal.StringFixed(2))
	assert.Equal(t, "31.00", cart.Total.StringFixed(2))
}

func TestCartService_ViewCart_VanishedProductZeroesLine(t *testing.T) {
	service, cartRepo, productRepo := createTestCartService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	ghostID := uuid.New()

	cartRepo.On("ListByUser", ctx, customer.ID).Return([]*entity.CartItem{
		{UserID: customer.ID, ProductID: ghostID, Quantity: 4},
	}, nil)
	productRepo.On("FindByID", ctx, ghostID).Return(nil, repository.ErrProductNotFound)

	cart, err := service.ViewCart(ctx, customer)

	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Nil(t, cart.Lines[0].Product)
	assert.Equal(t, "0.00", cart.Lines[0].LineTotal.StringFixed(2))
	assert.Equal(t, "0.00", cart.Total.StringFixed(2))
}

func TestCartService_SetItemQuantity_NegativeRejected(t *testing.T) {
	service, _, _ := createTestCartService(t)
	ctx := context.Background()

	cart, err := service.SetItemQuantity(ctx, newActiveUser(entity.RoleUser), uuid.New(), -1)

	assert.Nil(t, cart)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestCartService_SetItemQuantity_ZeroRemovesLine(t *testing.T) {
	service, cartRepo, _ := createTestCartService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	productID := uuid.New()

	cartRepo.On("SetQuantity", ctx, customer.ID, productID, 0).Return(nil)
	cartRepo.On("ListByUser", ctx, customer.ID).Return([]*entity.CartItem{}, nil)

	cart, err := service.SetItemQuantity(ctx, customer, productID, 0)

	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}
