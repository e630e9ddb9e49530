package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "fenix/internal/delivery/context"
	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/rbac"
	"fenix/internal/domain/repository"
	"fenix/internal/domain/service"
	"fenix/internal/usecase"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	whatsapp     service.WhatsAppSender
	logger       *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	UserRepo     repository.UserRepository
	SettingsRepo repository.SettingsRepository
	WhatsApp     service.WhatsAppSender
	Logger       *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		userRepo:     params.UserRepo,
		settingsRepo: params.SettingsRepo,
		whatsapp:     params.WhatsApp,
		logger:       params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts the requester's cart into a new order. The operative
// profile must be complete and the cart non-empty. Stock is NOT deducted
// here; that happens once, when fulfillment starts.
func (srv *orderService) Checkout(ctx context.Context, requester *entity.User) (*usecase.CheckoutOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	user, err := srv.userRepo.FindByID(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	if !user.CheckProfileCompleted() {
		missing := user.MissingProfileFields(srv.resolveLanguage(ctx, user))

		return nil, domainerrors.ErrProfileIncomplete.WithDetails(fmt.Sprintf("campos pendientes: %v", missing))
	}

	output := &usecase.CheckoutOutput{}
	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		cartItems, err := factory.CartRepo().ListByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return domainerrors.ErrCartEmpty
		}

		order := &entity.Order{
			CustomerID: user.ID,
			Status:     entity.OrderStatusNew,
		}

		productRepo := factory.ProductRepo()
		for _, cartItem := range cartItems {
			product, err := productRepo.FindByID(ctx, cartItem.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive {
				return domainerrors.ErrProductNotFound.WithDetails(product.NameES)
			}
			if product.StockAvailable < cartItem.Quantity {
				output.Warnings = append(output.Warnings, fmt.Sprintf(
					"Stock insuficiente para %s: solicitado %d, disponible %d",
					product.NameES, cartItem.Quantity, product.StockAvailable,
				))
			}

			order.Items = append(order.Items, &entity.OrderItem{
				ProductID:         product.ID,
				ProductNameES:     product.NameES,
				ProductNameZhHans: product.NameZhHans,
				Quantity:          cartItem.Quantity,
				UnitPrice:         product.Price,
			})
		}

		orderRepo := factory.OrderRepo()
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		if err := orderRepo.AppendEvent(ctx, &entity.OrderEvent{
			OrderID:   order.ID,
			Status:    entity.OrderStatusNew,
			CreatedBy: user.ID,
		}); err != nil {
			return err
		}

		if err := emitOrderNotification(ctx, factory, user.ID, order.ID, entity.EventOrderCreated); err != nil {
			return err
		}

		if err := factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &user.ID,
			Action:   entity.AuditOrderCreated,
			TargetID: &order.ID,
			Detail:   fmt.Sprintf("total %s", order.TotalAmount.StringFixed(2)),
		}); err != nil {
			return err
		}

		if err := factory.CartRepo().Clear(ctx, user.ID); err != nil {
			return err
		}

		output.Order = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Staff heads-up over WhatsApp is best effort and never fails checkout.
	go srv.notifyStaffNewOrder(output.Order, user)

	srv.log(ctx).Info("Order placed",
		slog.String("order", output.Order.ID.String()),
		slog.String("customer", user.Email),
		slog.String("total", output.Order.TotalAmount.StringFixed(2)),
	)

	return output, nil
}

// resolveLanguage falls back from the user's language to the platform default.
func (srv *orderService) resolveLanguage(ctx context.Context, user *entity.User) entity.Language {
	platformDefault := entity.LanguageES
	if settings, err := srv.settingsRepo.Get(ctx); err == nil {
		platformDefault = settings.DefaultLanguage
	}

	return entity.ResolveLanguage(user.Language, platformDefault)
}

func (srv *orderService) notifyStaffNewOrder(order *entity.Order, customer *entity.User) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	message := fmt.Sprintf("Nuevo pedido %s de %s por %s EUR",
		orderRef(order.ID), customer.Email, order.TotalAmount.StringFixed(2))

	if err := srv.whatsapp.SendText(ctx, "", message); err != nil {
		srv.logger.Warn("Failed to send WhatsApp order alert",
			slog.String("order", order.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// GetOrder loads one order. Customers only see their own.
func (srv *orderService) GetOrder(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.Order, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanManageUsers(requester) && order.CustomerID != requester.ID {
		return nil, repository.ErrOrderNotFound
	}

	return order, nil
}

// ListOrders returns one page of orders. Customers are pinned to their own
// orders regardless of the filter.
func (srv *orderService) ListOrders(ctx context.Context, requester *entity.User, input *usecase.ListOrdersInput) (*usecase.ListOrdersOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	filter := repository.OrderFilter{
		CustomerID: input.CustomerID,
		Status:     entity.OrderStatus(input.Status),
		Limit:      input.Limit,
		Offset:     input.Offset,
	}
	if !rbac.CanManageUsers(requester) {
		filter.CustomerID = &requester.ID
	}

	orders, total, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &usecase.ListOrdersOutput{Orders: orders, Total: total}, nil
}

// ApplyStatus performs one lifecycle transition under a row lock. Crossing
// into fulfillment claims the one-shot stock deduction; the claim is a
// conditional update, so concurrent or repeated transitions deduct at most
// once over the order's lifetime.
func (srv *orderService) ApplyStatus(ctx context.Context, requester *entity.User, input *usecase.ApplyStatusInput) (*usecase.ApplyStatusOutput, error) {
	if !rbac.CanManageUsers(requester) {
		return nil, domainerrors.ErrForbidden
	}
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrInvalidStatusTransition.WithDetails(string(input.Status))
	}

	output := &usecase.ApplyStatusOutput{}
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		orderRepo := factory.OrderRepo()

		order, err := orderRepo.FindByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}

		previous := order.Status
		if previous == input.Status {
			// Idempotent no-op; nothing to write, nothing to notify.
			output.Order = order

			return nil
		}
		if !previous.CanTransition(input.Status) {
			return domainerrors.ErrInvalidStatusTransition.WithDetails(
				fmt.Sprintf("%s -> %s", previous, input.Status))
		}

		if shouldDeductStock(previous, input.Status) && !order.StockDeducted {
			won, err := orderRepo.ClaimStockDeduction(ctx, order.ID)
			if err != nil {
				return err
			}
			if won {
				warnings, err := deductOrderStock(ctx, factory.ProductRepo(), order)
				if err != nil {
					return err
				}
				output.StockDeducted = true
				output.StockWarnings = warnings
				order.StockDeducted = true
			}
		}

		order.Status = input.Status
		if input.Status == entity.OrderStatusDelivered {
			now := time.Now()
			order.DeliveredAt = &now
		}

		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}

		if err := orderRepo.AppendEvent(ctx, &entity.OrderEvent{
			OrderID:   order.ID,
			Status:    input.Status,
			Note:      input.Note,
			CreatedBy: requester.ID,
		}); err != nil {
			return err
		}

		// The event mapping is empty for preparing, which stays silent.
		if err := emitOrderNotification(ctx, factory, order.CustomerID, order.ID, input.Status.Event()); err != nil {
			return err
		}

		if err := factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &requester.ID,
			Action:   entity.AuditOrderStatusChanged,
			TargetID: &order.ID,
			Detail:   fmt.Sprintf("%s -> %s", previous, input.Status),
		}); err != nil {
			return err
		}

		output.Order = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order status applied",
		slog.String("order", output.Order.ID.String()),
		slog.String("status", output.Order.Status.String()),
		slog.Bool("stockDeducted", output.StockDeducted),
	)

	return output, nil
}

// shouldDeductStock reports whether moving from previous to next crosses
// into fulfillment. Cancelling never deducts; jumping over preparing does.
func shouldDeductStock(previous, next entity.OrderStatus) bool {
	if next == entity.OrderStatusCancelled {
		return false
	}

	crossed := func(s entity.OrderStatus) bool {
		switch s {
		case entity.OrderStatusPreparing, entity.OrderStatusOutForDelivery, entity.OrderStatusDelivered:
			return true
		default:
			return false
		}
	}

	return crossed(next) && !crossed(previous)
}

// deductOrderStock subtracts each line's quantity from its product under a
// row lock, clamping at zero. Clamped products are reported as warnings.
func deductOrderStock(ctx context.Context, productRepo repository.ProductRepository, order *entity.Order) ([]string, error) {
	var warnings []string
	for _, item := range order.Items {
		product, err := productRepo.FindByIDForUpdate(ctx, item.ProductID)
		if errors.Is(err, repository.ErrProductNotFound) {
			// Product removed after ordering; nothing left to deduct.
			warnings = append(warnings, fmt.Sprintf("Producto %s ya no existe", item.ProductNameES))

			continue
		}
		if err != nil {
			return nil, err
		}

		remaining := product.StockAvailable - item.Quantity
		if remaining < 0 {
			warnings = append(warnings, fmt.Sprintf(
				"Stock de %s agotado: solicitado %d, disponible %d",
				product.NameES, item.Quantity, product.StockAvailable,
			))
			remaining = 0
		}

		product.StockAvailable = remaining
		if err := productRepo.Update(ctx, product); err != nil {
			return nil, err
		}
	}

	return warnings, nil
}

// UpdateETA replaces the delivery window and notifies the customer.
func (srv *orderService) UpdateETA(ctx context.Context, requester *entity.User, input *usecase.UpdateETAInput) (*entity.Order, error) {
	if !rbac.CanManageUsers(requester) {
		return nil, domainerrors.ErrForbidden
	}
	if !input.ETAEnd.After(input.ETAStart) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("eta window end must be after start")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		orderRepo := factory.OrderRepo()

		order, err := orderRepo.FindByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return domainerrors.ErrInvalidStatusTransition.WithDetails("order already closed")
		}

		order.ETAStart = &input.ETAStart
		order.ETAEnd = &input.ETAEnd

		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}

		if err := emitOrderNotification(ctx, factory, order.CustomerID, order.ID, entity.EventETAUpdated); err != nil {
			return err
		}

		if err := factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &requester.ID,
			Action:   entity.AuditOrderETAUpdated,
			TargetID: &order.ID,
			Detail:   fmt.Sprintf("%s - %s", input.ETAStart.Format(time.RFC3339), input.ETAEnd.Format(time.RFC3339)),
		}); err != nil {
			return err
		}

		updated = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// FlagLateOrders notifies customers of out-for-delivery orders whose ETA
// window has passed. The notification dedupe makes repeated sweeps harmless.
func (srv *orderService) FlagLateOrders(ctx context.Context, now time.Time) (int, error) {
	orders, _, err := srv.orderRepo.List(ctx, repository.OrderFilter{
		Status: entity.OrderStatusOutForDelivery,
	})
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, order := range orders {
		if order.ETAEnd == nil || !order.ETAEnd.Before(now) {
			continue
		}

		orderID := order.ID
		customerID := order.CustomerID
		err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
			return emitOrderNotification(ctx, factory, customerID, orderID, entity.EventOrderLate)
		})
		if err != nil {
			srv.log(ctx).Warn("Failed to flag late order",
				slog.String("order", orderID.String()),
				slog.String("error", err.Error()),
			)

			continue
		}
		flagged++
	}

	return flagged, nil
}

// UploadDocument attaches document metadata to an order. Staff only.
func (srv *orderService) UploadDocument(ctx context.Context, requester *entity.User, input *usecase.UploadDocumentInput) (*entity.OrderDocument, error) {
	if !rbac.CanManageUsers(requester) {
		return nil, domainerrors.ErrForbidden
	}
	if !input.DocumentType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown document type")
	}

	doc := &entity.OrderDocument{
		OrderID:      input.OrderID,
		DocumentType: input.DocumentType,
		Title:        input.Title,
		Description:  input.Description,
		FilePath:     input.FilePath,
		UploadedBy:   requester.ID,
		UploadedAt:   time.Now(),
	}

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if _, err := factory.OrderRepo().FindByID(ctx, input.OrderID); err != nil {
			return err
		}
		if err := factory.OrderRepo().AddDocument(ctx, doc); err != nil {
			return err
		}

		return factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &requester.ID,
			Action:   entity.AuditDocumentUploaded,
			TargetID: &input.OrderID,
			Detail:   doc.Title,
		})
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListDocuments returns the documents of an order. Customers only see
// documents of their own orders.
func (srv *orderService) ListDocuments(ctx context.Context, requester *entity.User, orderID uuid.UUID) ([]*entity.OrderDocument, error) {
	if _, err := srv.GetOrder(ctx, requester, orderID); err != nil {
		return nil, err
	}

	return srv.orderRepo.ListDocuments(ctx, orderID)
}
