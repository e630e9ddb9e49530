package impl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "fenix/internal/delivery/context"
	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/rbac"
	"fenix/internal/domain/repository"
	"fenix/internal/usecase"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	AuditRepo   repository.AuditRepository
	Logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		auditRepo:   params.AuditRepo,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns one catalog page. Customers only see active products;
// staff may request the full catalog.
func (srv *catalogService) ListProducts(ctx context.Context, requester *entity.User, input *usecase.ListProductsInput) (*usecase.ListProductsOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	onlyActive := input.OnlyActive
	if !rbac.CanManageUsers(requester) {
		onlyActive = true
	}

	products, total, err := srv.productRepo.List(ctx, repository.ProductFilter{
		Search:     input.Search,
		OnlyActive: onlyActive,
		Limit:      input.Limit,
		Offset:     input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.ListProductsOutput{Products: products, Total: total}, nil
}

// GetProduct loads one product. Customers cannot see inactive products.
func (srv *catalogService) GetProduct(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.Product, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive && !rbac.CanManageUsers(requester) {
		return nil, repository.ErrProductNotFound
	}

	return product, nil
}

// CreateProduct adds a catalog item. Staff only.
func (srv *catalogService) CreateProduct(ctx context.Context, requester *entity.User, input *usecase.ProductInput) (*entity.Product, error) {
	if !rbac.CanManageUsers(requester) {
		return nil, domainerrors.ErrForbidden
	}
	if input.NameES == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("product name is required")
	}
	if input.Price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}

	product := &entity.Product{
		NameES:            input.NameES,
		NameZhHans:        input.NameZhHans,
		DescriptionES:     input.DescriptionES,
		DescriptionZhHans: input.DescriptionZhHans,
		Price:             input.Price,
		IsActive:          input.IsActive,
		StockAvailable:    input.StockAvailable,
		StockMinThreshold: input.StockMinThreshold,
	}

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.ProductRepo().Create(ctx, product); err != nil {
			return err
		}

		return factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &requester.ID,
			Action:   entity.AuditProductCreated,
			TargetID: &product.ID,
			Detail:   product.NameES,
		})
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateProduct replaces the editable fields of a product. Staff only.
func (srv *catalogService) UpdateProduct(ctx context.Context, requester *entity.User, id uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	if !rbac.CanManageUsers(requester) {
		return nil, domainerrors.ErrForbidden
	}
	if input.Price.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}

	var updated *entity.Product
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		productRepo := factory.ProductRepo()

		product, err := productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		product.NameES = input.NameES
		product.NameZhHans = input.NameZhHans
		product.DescriptionES = input.DescriptionES
		product.DescriptionZhHans = input.DescriptionZhHans
		product.Price = input.Price
		product.IsActive = input.IsActive
		product.StockAvailable = input.StockAvailable
		product.StockMinThreshold = input.StockMinThreshold

		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		updated = product

		return factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &requester.ID,
			Action:   entity.AuditProductUpdated,
			TargetID: &product.ID,
			Detail:   product.NameES,
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteProduct removes a product from the catalog. Staff only.
func (srv *catalogService) DeleteProduct(ctx context.Context, requester *entity.User, id uuid.UUID) error {
	if !rbac.CanManageUsers(requester) {
		return domainerrors.ErrForbidden
	}

	return srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.ProductRepo().Delete(ctx, id); err != nil {
			return err
		}

		return factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &requester.ID,
			Action:   entity.AuditProductDeleted,
			TargetID: &id,
		})
	})
}

// AdjustStock sets the absolute available stock of a product. The row lock
// serializes this against concurrent order deductions.
func (srv *catalogService) AdjustStock(ctx context.Context, requester *entity.User, id uuid.UUID, stock int) (*entity.Product, error) {
	if !rbac.CanManageUsers(requester) {
		return nil, domainerrors.ErrForbidden
	}
	if stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("stock must not be negative")
	}

	var updated *entity.Product
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		productRepo := factory.ProductRepo()

		product, err := productRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		previous := product.StockAvailable
		product.StockAvailable = stock

		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		updated = product

		return factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &requester.ID,
			Action:   entity.AuditStockUpdated,
			TargetID: &product.ID,
			Detail:   fmt.Sprintf("%s: %d -> %d", product.NameES, previous, stock),
		})
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Stock adjusted",
		slog.String("product", updated.NameES),
		slog.Int("stock", updated.StockAvailable),
		slog.String("stockStatus", updated.StockStatus.String()),
	)

	return updated, nil
}
