package impl

import (
	"context"
	"testing"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"
	mockrepo "fenix/internal/mocks/repository"
	"fenix/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogServiceFixtures struct {
	productRepo *mockrepo.MockProductRepository
	auditRepo   *mockrepo.MockAuditRepository
}

func createTestCatalogService(t *testing.T) (usecase.CatalogUsecase, *catalogServiceFixtures) {
	fx := &catalogServiceFixtures{
		productRepo: mockrepo.NewMockProductRepository(t),
		auditRepo:   mockrepo.NewMockAuditRepository(t),
	}

	txManager := &mockrepo.StubTransactionManager{
		Factory: &mockrepo.StubRepositoryFactory{
			Products: fx.productRepo,
			Audit:    fx.auditRepo,
		},
	}

	service := NewCatalogService(CatalogServiceParams{
		TxManager:   txManager,
		ProductRepo: fx.productRepo,
		AuditRepo:   fx.auditRepo,
		Logger:      testLogger(),
	})

	return service, fx
}

func TestCatalogService_ListProducts_CustomerForcedActiveOnly(t *testing.T) {
	service, fx := createTestCatalogService(t)
	ctx := context.Background()

	fx.productRepo.On("List", ctx, mock.MatchedBy(func(filter repository.ProductFilter) bool {
		return filter.OnlyActive
	})).Return([]*entity.Product{}, int64(0), nil)

	_, err := service.ListProducts(ctx, newCompleteCustomer(), &usecase.ListProductsInput{
		OnlyActive: false,
	})

	require.NoError(t, err)
}

func TestCatalogService_ListProducts_StaffSeesFullCatalog(t *testing.T) {
	service, fx := createTestCatalogService(t)
	ctx := context.Background()

	inactive := newTestProduct("Aceite de girasol", "12.00", 0)
	inactive.IsActive = false

	fx.productRepo.On("List", ctx, mock.MatchedBy(func(filter repository.ProductFilter) bool {
		return !filter.OnlyActive
	})).Return([]*entity.Product{inactive}, int64(1), nil)

	output, err := service.ListProducts(ctx, newActiveUser(entity.RoleAdmin), &usecase.ListProductsInput{
		OnlyActive: false,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), output.Total)
}

func TestCatalogService_GetProduct_InactiveHiddenFromCustomer(t *testing.T) {
	service, fx := createTestCatalogService(t)
	ctx := context.Background()

	product := newTestProduct("Salsa de soja", "3.50", 40)
	product.IsActive = false

	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.GetProduct(ctx, newCompleteCustomer(), product.ID)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, repository.ErrProductNotFound))
}

func TestCatalogService_GetProduct_InactiveVisibleToStaff(t *testing.T) {
	service, fx := createTestCatalogService(t)
	ctx := context.Background()

	product := newTestProduct("Salsa de soja", "3.50", 40)
	product.IsActive = false

	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	result, err := service.GetProduct(ctx, newActiveUser(entity.RoleAdmin), product.ID)

	require.NoError(t, err)
	assert.Equal(t, product.ID, result.ID)
}

func TestCatalogService_CreateProduct_CustomerForbidden(t *testing.T) {
	service, _ := createTestCatalogService(t)
	ctx := context.Background()

	result, err := service.CreateProduct(ctx, newCompleteCustomer(), &usecase.ProductInput{
		NameES: "Fideos de arroz",
		Price:  decimal.NewFromInt(2),
	})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestCatalogService_CreateProduct_RejectsEmptyName(t *testing.T) {
	service, _ := createTestCatalogService(t)
	ctx := context.Background()

	result, err := service.CreateProduct(ctx, newActiveUser(entity.RoleAdmin), &usecase.ProductInput{
		Price: decimal.NewFromInt(2),
	})

	assert.Nil(t, result)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestCatalogService_CreateProduct_RejectsNegativePrice(t *testing.T) {
	service, _ := createTestCatalogService(t)
	ctx := context.Background()

	result, err := service.CreateProduct(ctx, newActiveUser(entity.RoleAdmin), &usecase.ProductInput{
		NameES: "Fideos de arroz",
		Price:  decimal.NewFromInt(-1),
	})

	assert.Nil(t, result)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestCatalogService_CreateProduct_Success(t *testing.T) {
	service, fx := createTestCatalogService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)

	fx.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	fx.auditRepo.On("Append", ctx, mock.MatchedBy(func(log *entity.AuditLog) bool {
		return log.Action == entity.AuditProductCreated && *log.ActorID == admin.ID
	})).Return(nil)

	result, err := service.CreateProduct(ctx, admin, &usecase.ProductInput{
		NameES:            "Fideos de arroz",
		NameZhHans:        "米粉",
		Price:             decimal.RequireFromString("2.30"),
		IsActive:          true,
		StockAvailable:    100,
		StockMinThreshold: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, "Fideos de arroz", result.NameES)
	assert.True(t, result.Price.Equal(decimal.RequireFromString("2.30")))
}

func TestCatalogService_AdjustStock_RejectsNegative(t *testing.T) {
	service, _ := createTestCatalogService(t)
	ctx := context.Background()

	product := newTestProduct("Vinagre negro", "4.10", 12)

	result, err := service.AdjustStock(ctx, newActiveUser(entity.RoleAdmin), product.ID, -1)

	assert.Nil(t, result)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestCatalogService_AdjustStock_LocksRowAndAudits(t *testing.T) {
	service, fx := createTestCatalogService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	product := newTestProduct("Vinagre negro", "4.10", 12)

	fx.productRepo.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
	fx.productRepo.On("Update", ctx, product).Return(nil)
	fx.auditRepo.On("Append", ctx, mock.MatchedBy(func(log *entity.AuditLog) bool {
		return log.Action == entity.AuditStockUpdated &&
			log.Detail == "Vinagre negro: 12 -> 3"
	})).Return(nil)

	result, err := service.AdjustStock(ctx, admin, product.ID, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, result.StockAvailable)
}

func TestCatalogService_DeleteProduct_Success(t *testing.T) {
	service, fx := createTestCatalogService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	id := newTestProduct("Té verde", "5.00", 8).ID

	fx.productRepo.On("Delete", ctx, id).Return(nil)
	fx.auditRepo.On("Append", ctx, mock.MatchedBy(func(log *entity.AuditLog) bool {
		return log.Action == entity.AuditProductDeleted && *log.TargetID == id
	})).Return(nil)

	err := service.DeleteProduct(ctx, admin, id)

	require.NoError(t, err)
}
