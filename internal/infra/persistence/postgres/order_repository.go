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

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order with its line items. Line totals and the order
// total are recomputed before the write.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	for _, item := range order.Items {
		item.ComputeLineTotal()
	}
	order.TotalAmount = order.ComputeTotal()
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid customer or product reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// FindByID retrieves an order with items and events preloaded.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindByIDForUpdate retrieves an order holding a row lock. Associations are
// loaded with separate statements after the lock is taken.
func (repo *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to lock order for update")
	}

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", id).
		Find(&orderM.Items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load order items")
	}

	return toOrderDomain(&orderM), nil
}

// List returns orders narrowed by the filter, newest first.
func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	query = query.Preload("Items").Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var orderModels []*model.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// Update persists the mutable order fields.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":       order.Status.String(),
			"eta_start":    order.ETAStart,
			"eta_end":      order.ETAEnd,
			"delivered_at": order.DeliveredAt,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// ClaimStockDeduction atomically flips stock_deducted from false to true.
// RowsAffected tells whether this call won the claim.
func (repo *orderRepository) ClaimStockDeduction(ctx context.Context, orderID uuid.UUID) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND stock_deducted = ?", orderID, false).
		Update("stock_deducted", true)

	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to claim stock deduction")
	}

	return result.RowsAffected > 0, nil
}

// AppendEvent adds an immutable status event to the order's trail.
func (repo *orderRepository) AppendEvent(ctx context.Context, event *entity.OrderEvent) error {
	eventM := &model.OrderEventModel{
		OrderID:   event.OrderID,
		Status:    event.Status.String(),
		Note:      event.Note,
		CreatedBy: event.CreatedBy,
	}

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append order event")
	}

	event.ID = eventM.ID
	event.CreatedAt = eventM.CreatedAt

	return nil
}

// AddDocument attaches document metadata to an order.
func (repo *orderRepository) AddDocument(ctx context.Context, doc *entity.OrderDocument) error {
	docM := &model.OrderDocumentModel{
		OrderID:      doc.OrderID,
		DocumentType: string(doc.DocumentType),
		Title:        doc.Title,
		Description:  doc.Description,
		FilePath:     doc.FilePath,
		UploadedBy:   doc.UploadedBy,
		UploadedAt:   doc.UploadedAt,
	}

	if err := repo.db.WithContext(ctx).Create(docM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrOrderNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add order document")
	}

	doc.ID = docM.ID

	return nil
}

// ListDocuments returns the documents attached to an order, newest first.
func (repo *orderRepository) ListDocuments(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderDocument, error) {
	var docModels []*model.OrderDocumentModel

	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("uploaded_at DESC").
		Find(&docModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list order documents")
	}

	docs := make([]*entity.OrderDocument, 0, len(docModels))
	for _, docM := range docModels {
		docs = append(docs, toOrderDocumentDomain(docM))
	}

	return docs, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	order := &entity.Order{
		ID:            data.ID,
		CustomerID:    data.CustomerID,
		Status:        entity.OrderStatus(data.Status),
		ETAStart:      data.ETAStart,
		ETAEnd:        data.ETAEnd,
		TotalAmount:   data.TotalAmount,
		StockDeducted: data.StockDeducted,
		DeliveredAt:   data.DeliveredAt,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}

	for i := range data.Items {
		itemM := &data.Items[i]
		order.Items = append(order.Items, &entity.OrderItem{
			ID:                itemM.ID,
			OrderID:           itemM.OrderID,
			ProductID:         itemM.ProductID,
			ProductNameES:     itemM.ProductNameES,
			ProductNameZhHans: itemM.ProductNameZhHans,
			Quantity:          itemM.Quantity,
			UnitPrice:         itemM.UnitPrice,
			LineTotal:         itemM.LineTotal,
		})
	}

	for i := range data.Events {
		eventM := &data.Events[i]
		order.Events = append(order.Events, &entity.OrderEvent{
			ID:        eventM.ID,
			OrderID:   eventM.OrderID,
			Status:    entity.OrderStatus(eventM.Status),
			Note:      eventM.Note,
			CreatedBy: eventM.CreatedBy,
			CreatedAt: eventM.CreatedAt,
		})
	}

	for i := range data.Documents {
		order.Documents = append(order.Documents, toOrderDocumentDomain(&data.Documents[i]))
	}

	return order
}

func fromOrderDomain(order *entity.Order) *model.OrderModel {
	if order == nil {
		return nil
	}

	orderM := &model.OrderModel{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		Status:        order.Status.String(),
		ETAStart:      order.ETAStart,
		ETAEnd:        order.ETAEnd,
		TotalAmount:   order.TotalAmount,
		StockDeducted: order.StockDeducted,
		DeliveredAt:   order.DeliveredAt,
	}

	for _, item := range order.Items {
		orderM.Items = append(orderM.Items, model.OrderItemModel{
			ID:                item.ID,
			ProductID:         item.ProductID,
			ProductNameES:     item.ProductNameES,
			ProductNameZhHans: item.ProductNameZhHans,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			LineTotal:         item.LineTotal,
		})
	}

	return orderM
}

func toOrderDocumentDomain(data *model.OrderDocumentModel) *entity.OrderDocument {
	if data == nil {
		return nil
	}

	return &entity.OrderDocument{
		ID:           data.ID,
		OrderID:      data.OrderID,
		DocumentType: entity.OrderDocumentType(data.DocumentType),
		Title:        data.Title,
		Description:  data.Description,
		FilePath:     data.FilePath,
		UploadedBy:   data.UploadedBy,
		UploadedAt:   data.UploadedAt,
	}
}
