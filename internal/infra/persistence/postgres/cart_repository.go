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

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{
		db: db,
	}
}

// ListByUser returns the user's cart rows, oldest first.
func (repo *cartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartItem, error) {
	var itemModels []*model.CartItemModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cart items")
	}

	items := make([]*entity.CartItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toCartItemDomain(itemM))
	}

	return items, nil
}

// Add inserts the item or accumulates quantity onto the existing row via an
// upsert on the (user, product) unique index.
func (repo *cartRepository) Add(ctx context.Context, item *entity.CartItem) error {
	itemM := &model.CartItemModel{
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_items.quantity + ?", item.Quantity),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(itemM).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add cart item")
	}

	item.ID = itemM.ID

	return nil
}

// SetQuantity replaces the quantity of an existing cart row. Zero removes it.
func (repo *cartRepository) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return repo.Remove(ctx, userID, productID)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set cart quantity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Remove deletes one product row from the user's cart.
func (repo *cartRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItemModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to remove cart item")
	}

	return nil
}

// Clear empties the user's cart.
func (repo *cartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear cart")
	}

	return nil
}

// --- Mapper Functions ---

func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	if data == nil {
		return nil
	}

	return &entity.CartItem{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
