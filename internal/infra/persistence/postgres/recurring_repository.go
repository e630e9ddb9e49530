package postgres

import (
	"context"
	"time"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"
	"fenix/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// recurringOrderRepository implements the repository.RecurringOrderRepository interface.
type recurringOrderRepository struct {
	db *gorm.DB
}

// NewRecurringOrderRepository is the constructor for recurringOrderRepository.
func NewRecurringOrderRepository(db *gorm.DB) repository.RecurringOrderRepository {
	return &recurringOrderRepository{
		db: db,
	}
}

// Create persists a recurring order template with its items.
func (repo *recurringOrderRepository) Create(ctx context.Context, ro *entity.RecurringOrder) error {
	roM := fromRecurringDomain(ro)

	if err := repo.db.WithContext(ctx).Create(roM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid customer or product reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create recurring order")
	}

	ro.ID = roM.ID
	ro.CreatedAt = roM.CreatedAt
	ro.UpdatedAt = roM.UpdatedAt
	for i, itemM := range roM.Items {
		ro.Items[i].ID = itemM.ID
		ro.Items[i].RecurringOrderID = roM.ID
	}

	return nil
}

// FindByID retrieves a recurring order with its items preloaded.
func (repo *recurringOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringOrder, error) {
	var roM model.RecurringOrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&roM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecurringOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find recurring order by ID")
	}

	return toRecurringDomain(&roM), nil
}

// ListByCustomer returns the customer's recurring orders, newest first.
func (repo *recurringOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.RecurringOrder, error) {
	var roModels []*model.RecurringOrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&roModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recurring orders")
	}

	ros := make([]*entity.RecurringOrder, 0, len(roModels))
	for _, roM := range roModels {
		ros = append(ros, toRecurringDomain(roM))
	}

	return ros, nil
}

// ListDue returns active templates whose next run is at or before now.
func (repo *recurringOrderRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*entity.RecurringOrder, error) {
	query := repo.db.WithContext(ctx).
		Preload("Items").
		Where("is_active = ? AND next_run_at IS NOT NULL AND next_run_at <= ?", true, now).
		Order("next_run_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var roModels []*model.RecurringOrderModel
	if err := query.Find(&roModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list due recurring orders")
	}

	ros := make([]*entity.RecurringOrder, 0, len(roModels))
	for _, roM := range roModels {
		ros = append(ros, toRecurringDomain(roM))
	}

	return ros, nil
}

// Update persists the template header and replaces its items.
func (repo *recurringOrderRepository) Update(ctx context.Context, ro *entity.RecurringOrder) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RecurringOrderModel{}).
		Where("id = ?", ro.ID).
		Updates(map[string]any{
			"is_active":             ro.IsActive,
			"frequency":             string(ro.Frequency),
			"start_date":            ro.StartDate,
			"end_date":              ro.EndDate,
			"next_run_at":           ro.NextRunAt,
			"delivery_window_hours": ro.DeliveryWindowHours,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update recurring order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRecurringOrderNotFound
	}

	// Replace the item set wholesale; templates are small.
	if err := repo.db.WithContext(ctx).
		Where("recurring_order_id = ?", ro.ID).
		Delete(&model.RecurringOrderItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear recurring order items")
	}

	for _, item := range ro.Items {
		itemM := &model.RecurringOrderItemModel{
			RecurringOrderID:  ro.ID,
			ProductID:         item.ProductID,
			ProductNameES:     item.ProductNameES,
			ProductNameZhHans: item.ProductNameZhHans,
			Quantity:          item.Quantity,
		}
		if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to create recurring order item")
		}
		item.ID = itemM.ID
		item.RecurringOrderID = ro.ID
	}

	return nil
}

// Delete removes a template and its items.
func (repo *recurringOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("recurring_order_id = ?", id).
		Delete(&model.RecurringOrderItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete recurring order items")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RecurringOrderModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete recurring order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRecurringOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toRecurringDomain(data *model.RecurringOrderModel) *entity.RecurringOrder {
	if data == nil {
		return nil
	}

	ro := &entity.RecurringOrder{
		ID:                  data.ID,
		CustomerID:          data.CustomerID,
		IsActive:            data.IsActive,
		Frequency:           entity.Frequency(data.Frequency),
		StartDate:           data.StartDate,
		EndDate:             data.EndDate,
		NextRunAt:           data.NextRunAt,
		DeliveryWindowHours: data.DeliveryWindowHours,
		CreatedAt:           data.CreatedAt,
		UpdatedAt:           data.UpdatedAt,
	}

	for i := range data.Items {
		itemM := &data.Items[i]
		ro.Items = append(ro.Items, &entity.RecurringOrderItem{
			ID:                itemM.ID,
			RecurringOrderID:  itemM.RecurringOrderID,
			ProductID:         itemM.ProductID,
			ProductNameES:     itemM.ProductNameES,
			ProductNameZhHans: itemM.ProductNameZhHans,
			Quantity:          itemM.Quantity,
		})
	}

	return ro
}

func fromRecurringDomain(ro *entity.RecurringOrder) *model.RecurringOrderModel {
	if ro == nil {
		return nil
	}

	roM := &model.RecurringOrderModel{
		ID:                  ro.ID,
		CustomerID:          ro.CustomerID,
		IsActive:            ro.IsActive,
		Frequency:           string(ro.Frequency),
		StartDate:           ro.StartDate,
		EndDate:             ro.EndDate,
		NextRunAt:           ro.NextRunAt,
		DeliveryWindowHours: ro.DeliveryWindowHours,
	}

	for _, item := range ro.Items {
		roM.Items = append(roM.Items, model.RecurringOrderItemModel{
			ProductID:         item.ProductID,
			ProductNameES:     item.ProductNameES,
			ProductNameZhHans: item.ProductNameZhHans,
			Quantity:          item.Quantity,
		})
	}

	return roM
}
