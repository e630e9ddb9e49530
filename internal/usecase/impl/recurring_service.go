package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "fenix/internal/delivery/context"
	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/rbac"
	"fenix/internal/domain/repository"
	"fenix/internal/usecase"
)

// recurringService implements the RecurringUsecase interface.
type recurringService struct {
	txManager     repository.TransactionManager
	recurringRepo repository.RecurringOrderRepository
	productRepo   repository.ProductRepository
	logger        *slog.Logger
}

// RecurringServiceParams holds dependencies for recurringService, injected by Fx.
type RecurringServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	RecurringRepo repository.RecurringOrderRepository
	ProductRepo   repository.ProductRepository
	Logger        *slog.Logger
}

// NewRecurringService is the constructor for recurringService.
func NewRecurringService(params RecurringServiceParams) usecase.RecurringUsecase {
	return &recurringService{
		txManager:     params.TxManager,
		recurringRepo: params.RecurringRepo,
		productRepo:   params.ProductRepo,
		logger:        params.Logger,
	}
}

func (srv *recurringService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create registers a recurring order template for the requester.
func (srv *recurringService) Create(ctx context.Context, requester *entity.User, input *usecase.RecurringOrderInput) (*entity.RecurringOrder, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	ro, err := srv.buildTemplate(ctx, requester.ID, input)
	if err != nil {
		return nil, err
	}

	// A future start date is itself the first run; the frequency only spaces
	// the runs after it.
	firstRun := ro.StartDate
	if !ro.StartDate.After(time.Now()) {
		firstRun = ro.Frequency.Next(time.Now())
	}
	ro.NextRunAt = &firstRun
	ro.IsActive = true

	if err := srv.recurringRepo.Create(ctx, ro); err != nil {
		return nil, err
	}

	return ro, nil
}

// List returns the requester's recurring order templates.
func (srv *recurringService) List(ctx context.Context, requester *entity.User) ([]*entity.RecurringOrder, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	return srv.recurringRepo.ListByCustomer(ctx, requester.ID)
}

// Get loads one template, pinned to the owner unless staff asks.
func (srv *recurringService) Get(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.RecurringOrder, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	ro, err := srv.recurringRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ro.CustomerID != requester.ID && !rbac.CanManageUsers(requester) {
		return nil, repository.ErrRecurringOrderNotFound
	}

	return ro, nil
}

// Update replaces the template fields and its item set.
func (srv *recurringService) Update(ctx context.Context, requester *entity.User, id uuid.UUID, input *usecase.RecurringOrderInput) (*entity.RecurringOrder, error) {
	existing, err := srv.Get(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	ro, err := srv.buildTemplate(ctx, existing.CustomerID, input)
	if err != nil {
		return nil, err
	}
	ro.ID = existing.ID
	ro.IsActive = existing.IsActive
	ro.NextRunAt = existing.NextRunAt

	if err := srv.recurringRepo.Update(ctx, ro); err != nil {
		return nil, err
	}

	return ro, nil
}

// Delete removes a template.
func (srv *recurringService) Delete(ctx context.Context, requester *entity.User, id uuid.UUID) error {
	if _, err := srv.Get(ctx, requester, id); err != nil {
		return err
	}

	return srv.recurringRepo.Delete(ctx, id)
}

// SetActive pauses or resumes a template. Resuming reschedules from now.
func (srv *recurringService) SetActive(ctx context.Context, requester *entity.User, id uuid.UUID, active bool) (*entity.RecurringOrder, error) {
	ro, err := srv.Get(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	ro.IsActive = active
	if active && ro.NextRunAt == nil {
		ro.ScheduleNextRun(time.Now())
	}

	if err := srv.recurringRepo.Update(ctx, ro); err != nil {
		return nil, err
	}

	return ro, nil
}

// RunDue materializes due templates into real orders and advances their
// schedules. Each template runs in its own transaction so one bad template
// never blocks the batch.
func (srv *recurringService) RunDue(ctx context.Context, now time.Time) (int, error) {
	due, err := srv.recurringRepo.ListDue(ctx, now, 100)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, template := range due {
		if err := srv.materialize(ctx, template, now); err != nil {
			srv.log(ctx).Warn("Failed to materialize recurring order",
				slog.String("template", template.ID.String()),
				slog.String("error", err.Error()),
			)

			continue
		}
		created++
	}

	return created, nil
}

func (srv *recurringService) materialize(ctx context.Context, template *entity.RecurringOrder, now time.Time) error {
	return srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		order := &entity.Order{
			CustomerID: template.CustomerID,
			Status:     entity.OrderStatusNew,
		}

		if template.DeliveryWindowHours > 0 {
			start := now.AddDate(0, 0, 1)
			end := start.Add(time.Duration(template.DeliveryWindowHours) * time.Hour)
			order.ETAStart = &start
			order.ETAEnd = &end
		}

		productRepo := factory.ProductRepo()
		for _, item := range template.Items {
			product, err := productRepo.FindByID(ctx, item.ProductID)
			if err != nil || !product.IsActive {
				// Skip vanished products; the rest of the template still runs.
				continue
			}

			order.Items = append(order.Items, &entity.OrderItem{
				ProductID:         product.ID,
				ProductNameES:     product.NameES,
				ProductNameZhHans: product.NameZhHans,
				Quantity:          item.Quantity,
				UnitPrice:         product.Price,
			})
		}
		if len(order.Items) == 0 {
			return domainerrors.ErrCartEmpty.WrapMessage("recurring template has no purchasable items")
		}

		orderRepo := factory.OrderRepo()
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		if err := orderRepo.AppendEvent(ctx, &entity.OrderEvent{
			OrderID:   order.ID,
			Status:    entity.OrderStatusNew,
			Note:      fmt.Sprintf("pedido recurrente %s", orderRef(template.ID)),
			CreatedBy: template.CustomerID,
		}); err != nil {
			return err
		}

		if err := emitOrderNotification(ctx, factory, template.CustomerID, order.ID, entity.EventOrderCreated); err != nil {
			return err
		}

		if err := factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &template.CustomerID,
			Action:   entity.AuditOrderCreated,
			TargetID: &order.ID,
			Detail:   fmt.Sprintf("recurrente %s", orderRef(template.ID)),
		}); err != nil {
			return err
		}

		template.ScheduleNextRun(now)

		return factory.RecurringRepo().Update(ctx, template)
	})
}

// buildTemplate validates input and snapshots the product lines.
func (srv *recurringService) buildTemplate(ctx context.Context, customerID uuid.UUID, input *usecase.RecurringOrderInput) (*entity.RecurringOrder, error) {
	if !input.Frequency.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown frequency")
	}
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("at least one item is required")
	}
	if input.EndDate != nil && !input.EndDate.After(input.StartDate) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("end date must be after start date")
	}

	ro := &entity.RecurringOrder{
		CustomerID:          customerID,
		Frequency:           input.Frequency,
		StartDate:           input.StartDate,
		EndDate:             input.EndDate,
		DeliveryWindowHours: input.DeliveryWindowHours,
	}

	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("item quantity must be positive")
		}

		product, err := srv.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, repository.ErrProductNotFound
		}

		ro.Items = append(ro.Items, &entity.RecurringOrderItem{
			ProductID:         product.ID,
			ProductNameES:     product.NameES,
			ProductNameZhHans: product.NameZhHans,
			Quantity:          item.Quantity,
		})
	}

	return ro, nil
}
