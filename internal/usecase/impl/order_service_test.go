package impl

import (
	"context"
	"testing"
	"time"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"
	mockrepo "fenix/internal/mocks/repository"
	mocksvc "fenix/internal/mocks/service"
	"fenix/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service          usecase.OrderUsecase
	orderRepo        *mockrepo.MockOrderRepository
	userRepo         *mockrepo.MockUserRepository
	productRepo      *mockrepo.MockProductRepository
	cartRepo         *mockrepo.MockCartRepository
	notificationRepo *mockrepo.MockNotificationRepository
	auditRepo        *mockrepo.MockAuditRepository
	settingsRepo     *mockrepo.MockSettingsRepository
	whatsapp         *mocksvc.MockWhatsAppSender
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	orderRepo := mockrepo.NewMockOrderRepository(t)
	userRepo := mockrepo.NewMockUserRepository(t)
	productRepo := mockrepo.NewMockProductRepository(t)
	cartRepo := mockrepo.NewMockCartRepository(t)
	notificationRepo := mockrepo.NewMockNotificationRepository(t)
	auditRepo := mockrepo.NewMockAuditRepository(t)
	settingsRepo := mockrepo.NewMockSettingsRepository(t)
	whatsapp := mocksvc.NewMockWhatsAppSender(t)

	txManager := &mockrepo.StubTransactionManager{
		Factory: &mockrepo.StubRepositoryFactory{
			Users:         userRepo,
			Products:      productRepo,
			Orders:        orderRepo,
			Carts:         cartRepo,
			Notifications: notificationRepo,
			Audit:         auditRepo,
		},
	}

	service := NewOrderService(OrderServiceParams{
		TxManager:    txManager,
		OrderRepo:    orderRepo,
		UserRepo:     userRepo,
		SettingsRepo: settingsRepo,
		WhatsApp:     whatsapp,
		Logger:       testLogger(),
	})

	return orderServiceFixtures{
		service:          service,
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		productRepo:      productRepo,
		cartRepo:         cartRepo,
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
		settingsRepo:     settingsRepo,
		whatsapp:         whatsapp,
	}
}

func newTestProduct(name string, price string, stock int) *entity.Product {
	return &entity.Product{
		ID:             uuid.New(),
		NameES:         name,
		Price:          decimal.RequireFromString(price),
		IsActive:       true,
		StockAvailable: stock,
	}
}

func TestOrderService_Checkout_ProfileIncomplete(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)

	fx.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	fx.settingsRepo.On("Get", ctx).
		Return(&entity.PlatformSettings{DefaultLanguage: entity.LanguageES}, nil)

	output, err := fx.service.Checkout(ctx, customer)

	assert.Nil(t, output)
	requireErrorCode(t, err, "PROFILE_INCOMPLETE")
}

func TestOrderService_Checkout_MissingFieldsUsePlatformDefaultLanguage(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	customer.Language = ""

	fx.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	fx.settingsRepo.On("Get", ctx).
		Return(&entity.PlatformSettings{DefaultLanguage: entity.LanguageZhHans}, nil)

	output, err := fx.service.Checkout(ctx, customer)

	assert.Nil(t, output)
	require.Error(t, err)

	// No language on the account, so the labels follow the platform default.
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "配送电话")
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customer := newCompleteCustomer()

	fx.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	fx.cartRepo.On("ListByUser", ctx, customer.ID).Return([]*entity.CartItem{}, nil)

	output, err := fx.service.Checkout(ctx, customer)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrCartEmpty))
}

func TestOrderService_Checkout_Success(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customer := newCompleteCustomer()
	product := newTestProduct("Aceite de oliva", "12.50", 3)

	fx.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	fx.cartRepo.On("ListByUser", ctx, customer.ID).Return([]*entity.CartItem{
		{UserID: customer.ID, ProductID: product.ID, Quantity: 5},
	}, nil)
	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*entity.Order)
			order.ID = uuid.New()
			for _, item := range order.Items {
				item.ComputeLineTotal()
			}
			order.TotalAmount = order.ComputeTotal()
		}).
		Return(nil)
	fx.orderRepo.On("AppendEvent", ctx, mock.MatchedBy(func(e *entity.OrderEvent) bool {
		return e.Status == entity.OrderStatusNew
	})).Return(nil)
	fx.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.EventType == entity.EventOrderCreated && n.UserID == customer.ID
	})).Return(nil)
	fx.auditRepo.On("Append", ctx, mock.MatchedBy(func(log *entity.AuditLog) bool {
		return log.Action == entity.AuditOrderCreated
	})).Return(nil)
	fx.cartRepo.On("Clear", ctx, customer.ID).Return(nil)
	fx.whatsapp.On("SendText", mock.Anything, "", mock.AnythingOfType("string")).
		Return(nil).Maybe()

	output, err := fx.service.Checkout(ctx, customer)

	require.NoError(t, err)
	require.NotNil(t, output.Order)
	assert.Equal(t, entity.OrderStatusNew, output.Order.Status)
	assert.Equal(t, "62.50", output.Order.TotalAmount.StringFixed(2))
	// Insufficient stock only warns at checkout; deduction happens later.
	require.Len(t, output.Warnings, 1)
	assert.Contains(t, output.Warnings[0], "Stock insuficiente")
	assert.False(t, output.Order.StockDeducted)
}

func TestOrderService_Checkout_InactiveProductRejected(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customer := newCompleteCustomer()
	product := newTestProduct("Descatalogado", "5.00", 10)
	product.IsActive = false

	fx.userRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	fx.cartRepo.On("ListByUser", ctx, customer.ID).Return([]*entity.CartItem{
		{UserID: customer.ID, ProductID: product.ID, Quantity: 1},
	}, nil)
	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	output, err := fx.service.Checkout(ctx, customer)

	assert.Nil(t, output)
	requireErrorCode(t, err, "PRODUCT_NOT_FOUND")
}

func TestOrderService_GetOrder_CustomerPinnedToOwn(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	order := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusNew}

	fx.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	got, err := fx.service.GetOrder(ctx, customer, order.ID)

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, repository.ErrOrderNotFound))
}

func TestOrderService_ListOrders_CustomerFilterOverridden(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	other := uuid.New()

	fx.orderRepo.On("List", ctx, mock.MatchedBy(func(filter repository.OrderFilter) bool {
		return filter.CustomerID != nil && *filter.CustomerID == customer.ID
	})).Return([]*entity.Order{}, int64(0), nil)

	_, err := fx.service.ListOrders(ctx, customer, &usecase.ListOrdersInput{CustomerID: &other})

	require.NoError(t, err)
}

func TestOrderService_ApplyStatus_CustomerForbidden(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)

	output, err := fx.service.ApplyStatus(ctx, customer, &usecase.ApplyStatusInput{
		OrderID: uuid.New(),
		Status:  entity.OrderStatusConfirmed,
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestOrderService_ApplyStatus_SameStatusIsNoOp(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	order := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusConfirmed}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)

	output, err := fx.service.ApplyStatus(ctx, admin, &usecase.ApplyStatusInput{
		OrderID: order.ID,
		Status:  entity.OrderStatusConfirmed,
	})

	require.NoError(t, err)
	assert.Equal(t, order, output.Order)
	assert.False(t, output.StockDeducted)
}

func TestOrderService_ApplyStatus_BackwardTransitionRejected(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	order := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusDelivered}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)

	output, err := fx.service.ApplyStatus(ctx, admin, &usecase.ApplyStatusInput{
		OrderID: order.ID,
		Status:  entity.OrderStatusConfirmed,
	})

	assert.Nil(t, output)
	requireErrorCode(t, err, "INVALID_STATUS_TRANSITION")
}

func expectTransitionPlumbing(ctx context.Context, fx orderServiceFixtures, order *entity.Order, next entity.OrderStatus) {
	fx.orderRepo.On("Update", ctx, order).Return(nil)
	fx.orderRepo.On("AppendEvent", ctx, mock.MatchedBy(func(e *entity.OrderEvent) bool {
		return e.OrderID == order.ID && e.Status == next
	})).Return(nil)
	fx.auditRepo.On("Append", ctx, mock.MatchedBy(func(log *entity.AuditLog) bool {
		return log.Action == entity.AuditOrderStatusChanged
	})).Return(nil)
}

func TestOrderService_ApplyStatus_EnteringPreparingDeductsOnce(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	product := newTestProduct("Arroz", "2.00", 10)
	order := &entity.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     entity.OrderStatusNew,
		Items: []*entity.OrderItem{
			{ProductID: product.ID, ProductNameES: product.NameES, Quantity: 4},
		},
	}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	fx.orderRepo.On("ClaimStockDeduction", ctx, order.ID).Return(true, nil)
	fx.productRepo.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
	fx.productRepo.On("Update", ctx, product).Return(nil)
	expectTransitionPlumbing(ctx, fx, order, entity.OrderStatusPreparing)
	// No notification expectation: preparing is silent.

	output, err := fx.service.ApplyStatus(ctx, admin, &usecase.ApplyStatusInput{
		OrderID: order.ID,
		Status:  entity.OrderStatusPreparing,
	})

	require.NoError(t, err)
	assert.True(t, output.StockDeducted)
	assert.Empty(t, output.StockWarnings)
	assert.Equal(t, 6, product.StockAvailable)
	assert.Equal(t, entity.OrderStatusPreparing, output.Order.Status)
}

func TestOrderService_ApplyStatus_DeductionClampsAtZero(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	product := newTestProduct("Harina", "1.00", 2)
	order := &entity.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     entity.OrderStatusNew,
		Items: []*entity.OrderItem{
			{ProductID: product.ID, ProductNameES: product.NameES, Quantity: 5},
		},
	}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	fx.orderRepo.On("ClaimStockDeduction", ctx, order.ID).Return(true, nil)
	fx.productRepo.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
	fx.productRepo.On("Update", ctx, product).Return(nil)
	expectTransitionPlumbing(ctx, fx, order, entity.OrderStatusPreparing)

	output, err := fx.service.ApplyStatus(ctx, admin, &usecase.ApplyStatusInput{
		OrderID: order.ID,
		Status:  entity.OrderStatusPreparing,
	})

	require.NoError(t, err)
	assert.True(t, output.StockDeducted)
	require.Len(t, output.StockWarnings, 1)
	assert.Contains(t, output.StockWarnings[0], "agotado")
	assert.Equal(t, 0, product.StockAvailable)
}

func TestOrderService_ApplyStatus_LostClaimSkipsDeduction(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	order := &entity.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     entity.OrderStatusNew,
		Items: []*entity.OrderItem{
			{ProductID: uuid.New(), Quantity: 1},
		},
	}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	fx.orderRepo.On("ClaimStockDeduction", ctx, order.ID).Return(false, nil)
	expectTransitionPlumbing(ctx, fx, order, entity.OrderStatusPreparing)

	output, err := fx.service.ApplyStatus(ctx, admin, &usecase.ApplyStatusInput{
		OrderID: order.ID,
		Status:  entity.OrderStatusPreparing,
	})

	require.NoError(t, err)
	assert.False(t, output.StockDeducted)
}

func TestOrderService_ApplyStatus_JumpOverPreparingStillDeducts(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	product := newTestProduct("Vinagre", "3.00", 8)
	order := &entity.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     entity.OrderStatusConfirmed,
		Items: []*entity.OrderItem{
			{ProductID: product.ID, ProductNameES: product.NameES, Quantity: 3},
		},
	}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	fx.orderRepo.On("ClaimStockDeduction", ctx, order.ID).Return(true, nil)
	fx.productRepo.On("FindByIDForUpdate", ctx, product.ID).Return(product, nil)
	fx.productRepo.On("Update", ctx, product).Return(nil)
	expectTransitionPlumbing(ctx, fx, order, entity.OrderStatusOutForDelivery)
	fx.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.EventType == entity.EventOrderOutForDelivery
	})).Return(nil)

	output, err := fx.service.ApplyStatus(ctx, admin, &usecase.ApplyStatusInput{
		OrderID: order.ID,
		Status:  entity.OrderStatusOutForDelivery,
	})

	require.NoError(t, err)
	assert.True(t, output.StockDeducted)
	assert.Equal(t, 5, product.StockAvailable)
}

func TestOrderService_ApplyStatus_CancelNeverDeducts(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	order := &entity.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     entity.OrderStatusNew,
		Items: []*entity.OrderItem{
			{ProductID: uuid.New(), Quantity: 2},
		},
	}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	expectTransitionPlumbing(ctx, fx, order, entity.OrderStatusCancelled)
	fx.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.EventType == entity.EventOrderCancelled
	})).Return(nil)

	output, err := fx.service.ApplyStatus(ctx, admin, &usecase.ApplyStatusInput{
		OrderID: order.ID,
		Status:  entity.OrderStatusCancelled,
	})

	require.NoError(t, err)
	assert.False(t, output.StockDeducted)
}

func TestOrderService_ApplyStatus_DeliveredStampsTimestamp(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	order := &entity.Order{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		Status:        entity.OrderStatusOutForDelivery,
		StockDeducted: true,
	}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	expectTransitionPlumbing(ctx, fx, order, entity.OrderStatusDelivered)
	fx.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.EventType == entity.EventOrderDelivered
	})).Return(nil)

	output, err := fx.service.ApplyStatus(ctx, admin, &usecase.ApplyStatusInput{
		OrderID: order.ID,
		Status:  entity.OrderStatusDelivered,
	})

	require.NoError(t, err)
	require.NotNil(t, output.Order.DeliveredAt)
	// The deduction latch is already set; no claim attempt is made.
	assert.False(t, output.StockDeducted)
}

func TestOrderService_ApplyStatus_DuplicateNotificationIsNoOp(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	order := &entity.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     entity.OrderStatusNew,
	}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	expectTransitionPlumbing(ctx, fx, order, entity.OrderStatusConfirmed)
	fx.notificationRepo.On("Create", ctx, mock.AnythingOfType("*entity.Notification")).
		Return(repository.ErrDuplicateNotification)

	output, err := fx.service.ApplyStatus(ctx, admin, &usecase.ApplyStatusInput{
		OrderID: order.ID,
		Status:  entity.OrderStatusConfirmed,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, output.Order.Status)
}

func TestShouldDeductStock(t *testing.T) {
	tests := []struct {
		name     string
		previous entity.OrderStatus
		next     entity.OrderStatus
		want     bool
	}{
		{"new to confirmed", entity.OrderStatusNew, entity.OrderStatusConfirmed, false},
		{"confirmed to preparing", entity.OrderStatusConfirmed, entity.OrderStatusPreparing, true},
		{"new to out for delivery", entity.OrderStatusNew, entity.OrderStatusOutForDelivery, true},
		{"new to delivered", entity.OrderStatusNew, entity.OrderStatusDelivered, true},
		{"preparing to out for delivery", entity.OrderStatusPreparing, entity.OrderStatusOutForDelivery, false},
		{"out for delivery to delivered", entity.OrderStatusOutForDelivery, entity.OrderStatusDelivered, false},
		{"new to cancelled", entity.OrderStatusNew, entity.OrderStatusCancelled, false},
		{"preparing to cancelled", entity.OrderStatusPreparing, entity.OrderStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldDeductStock(tt.previous, tt.next))
		})
	}
}

func TestOrderService_UpdateETA_InvertedWindowRejected(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	now := time.Now()

	order, err := fx.service.UpdateETA(ctx, admin, &usecase.UpdateETAInput{
		OrderID:  uuid.New(),
		ETAStart: now,
		ETAEnd:   now.Add(-time.Hour),
	})

	assert.Nil(t, order)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestOrderService_UpdateETA_NotifiesCustomer(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	order := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusConfirmed}
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(4 * time.Hour)

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil)
	fx.orderRepo.On("Update", ctx, order).Return(nil)
	fx.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.EventType == entity.EventETAUpdated
	})).Return(nil)
	fx.auditRepo.On("Append", ctx, mock.MatchedBy(func(log *entity.AuditLog) bool {
		return log.Action == entity.AuditOrderETAUpdated
	})).Return(nil)

	updated, err := fx.service.UpdateETA(ctx, admin, &usecase.UpdateETAInput{
		OrderID:  order.ID,
		ETAStart: start,
		ETAEnd:   end,
	})

	require.NoError(t, err)
	require.NotNil(t, updated.ETAStart)
	assert.True(t, updated.ETAEnd.After(*updated.ETAStart))
}

func TestOrderService_UpdateETA_EveryChangeNotifies(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	order := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusConfirmed}

	fx.orderRepo.On("FindByIDForUpdate", ctx, order.ID).Return(order, nil).Twice()
	fx.orderRepo.On("Update", ctx, order).Return(nil).Twice()
	fx.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.EventType == entity.EventETAUpdated
	})).Return(nil).Twice()
	fx.auditRepo.On("Append", ctx, mock.AnythingOfType("*entity.AuditLog")).Return(nil).Twice()

	for _, offset := range []time.Duration{24 * time.Hour, 48 * time.Hour} {
		start := time.Now().Add(offset)
		_, err := fx.service.UpdateETA(ctx, admin, &usecase.UpdateETAInput{
			OrderID:  order.ID,
			ETAStart: start,
			ETAEnd:   start.Add(4 * time.Hour),
		})
		require.NoError(t, err)
	}
}

func TestOrderService_FlagLateOrders(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	now := time.Now()
	pastEnd := now.Add(-2 * time.Hour)
	futureEnd := now.Add(2 * time.Hour)

	late := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusOutForDelivery, ETAEnd: &pastEnd}
	onTime := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusOutForDelivery, ETAEnd: &futureEnd}
	noETA := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusOutForDelivery}

	fx.orderRepo.On("List", ctx, repository.OrderFilter{Status: entity.OrderStatusOutForDelivery}).
		Return([]*entity.Order{late, onTime, noETA}, int64(3), nil)
	fx.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.EventType == entity.EventOrderLate && n.OrderID == late.ID
	})).Return(nil)

	flagged, err := fx.service.FlagLateOrders(ctx, now)

	require.NoError(t, err)
	assert.Equal(t, 1, flagged)
}

func TestOrderService_FlagLateOrders_DuplicateStillCounts(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	now := time.Now()
	pastEnd := now.Add(-time.Hour)
	late := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusOutForDelivery, ETAEnd: &pastEnd}

	fx.orderRepo.On("List", ctx, repository.OrderFilter{Status: entity.OrderStatusOutForDelivery}).
		Return([]*entity.Order{late}, int64(1), nil)
	fx.notificationRepo.On("Create", ctx, mock.AnythingOfType("*entity.Notification")).
		Return(repository.ErrDuplicateNotification)

	flagged, err := fx.service.FlagLateOrders(ctx, now)

	require.NoError(t, err)
	assert.Equal(t, 1, flagged)
}

func TestOrderService_UploadDocument_UnknownTypeRejected(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)

	doc, err := fx.service.UploadDocument(ctx, admin, &usecase.UploadDocumentInput{
		OrderID:      uuid.New(),
		DocumentType: "warranty",
		Title:        "Garantía",
	})

	assert.Nil(t, doc)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestOrderService_UploadDocument_Success(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	order := &entity.Order{ID: uuid.New(), CustomerID: uuid.New(), Status: entity.OrderStatusConfirmed}

	fx.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	fx.orderRepo.On("AddDocument", ctx, mock.MatchedBy(func(d *entity.OrderDocument) bool {
		return d.OrderID == order.ID && d.DocumentType == entity.DocTypeInvoice
	})).Return(nil)
	fx.auditRepo.On("Append", ctx, mock.MatchedBy(func(log *entity.AuditLog) bool {
		return log.Action == entity.AuditDocumentUploaded
	})).Return(nil)

	doc, err := fx.service.UploadDocument(ctx, admin, &usecase.UploadDocumentInput{
		OrderID:      order.ID,
		DocumentType: entity.DocTypeInvoice,
		Title:        "Factura 2026-001",
		FilePath:     "invoices/2026-001.pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, admin.ID, doc.UploadedBy)
	assert.False(t, doc.UploadedAt.IsZero())
}
