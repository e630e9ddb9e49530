package postgres

import (
	"context"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"
	"fenix/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindByIDForUpdate retrieves a product holding a row lock so concurrent
// stock deductions on the same product serialize inside the transaction.
func (repo *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to lock product for update")
	}

	return toProductDomain(&productM), nil
}

// List returns products narrowed by the filter with pagination.
func (repo *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name_es ILIKE ? OR name_zh_hans ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	query = query.Order("name_es ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var productModels []*model.ProductModel
	if err := query.Find(&productModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// Create persists a new product, refreshing the derived stock status first.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	product.RefreshStockStatus()
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product, refreshing the derived stock status.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	product.RefreshStockStatus()
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(productM)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product row.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:                data.ID,
		NameES:            data.NameES,
		NameZhHans:        data.NameZhHans,
		DescriptionES:     data.DescriptionES,
		DescriptionZhHans: data.DescriptionZhHans,
		Price:             data.Price,
		IsActive:          data.IsActive,
		StockAvailable:    data.StockAvailable,
		StockMinThreshold: data.StockMinThreshold,
		StockStatus:       entity.StockStatus(data.StockStatus),
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(product *entity.Product) *model.ProductModel {
	if product == nil {
		return nil
	}

	return &model.ProductModel{
		ID:                product.ID,
		NameES:            product.NameES,
		NameZhHans:        product.NameZhHans,
		DescriptionES:     product.DescriptionES,
		DescriptionZhHans: product.DescriptionZhHans,
		Price:             product.Price,
		IsActive:          product.IsActive,
		StockAvailable:    product.StockAvailable,
		StockMinThreshold: product.StockMinThreshold,
		StockStatus:       product.StockStatus.String(),
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}
