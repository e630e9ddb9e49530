package impl

import (
	"context"
	"testing"
	"time"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/repository"
	mockrepo "fenix/internal/mocks/repository"
	"fenix/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recurringServiceFixtures holds all test dependencies for recurring order tests.
type recurringServiceFixtures struct {
	service          usecase.RecurringUsecase
	recurringRepo    *mockrepo.MockRecurringOrderRepository
	productRepo      *mockrepo.MockProductRepository
	orderRepo        *mockrepo.MockOrderRepository
	notificationRepo *mockrepo.MockNotificationRepository
	auditRepo        *mockrepo.MockAuditRepository
}

func createTestRecurringService(t *testing.T) recurringServiceFixtures {
	recurringRepo := mockrepo.NewMockRecurringOrderRepository(t)
	productRepo := mockrepo.NewMockProductRepository(t)
	orderRepo := mockrepo.NewMockOrderRepository(t)
	notificationRepo := mockrepo.NewMockNotificationRepository(t)
	auditRepo := mockrepo.NewMockAuditRepository(t)

	txManager := &mockrepo.StubTransactionManager{
		Factory: &mockrepo.StubRepositoryFactory{
			Products:      productRepo,
			Orders:        orderRepo,
			Notifications: notificationRepo,
			Recurring:     recurringRepo,
			Audit:         auditRepo,
		},
	}

	service := NewRecurringService(RecurringServiceParams{
		TxManager:     txManager,
		RecurringRepo: recurringRepo,
		ProductRepo:   productRepo,
		Logger:        testLogger(),
	})

	return recurringServiceFixtures{
		service:          service,
		recurringRepo:    recurringRepo,
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
	}
}

func TestRecurringService_Create_UnknownFrequency(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)

	ro, err := fx.service.Create(ctx, customer, &usecase.RecurringOrderInput{
		Frequency: "fortnightly",
		StartDate: time.Now(),
		Items:     []usecase.RecurringItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})

	assert.Nil(t, ro)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestRecurringService_Create_SnapshotsItemsAndSchedules(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	product := newTestProduct("Salsa de soja", "4.20", 50)

	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.recurringRepo.On("Create", ctx, mock.AnythingOfType("*entity.RecurringOrder")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.RecurringOrder).ID = uuid.New()
		}).
		Return(nil)

	start := time.Now().AddDate(0, 0, 2)
	ro, err := fx.service.Create(ctx, customer, &usecase.RecurringOrderInput{
		Frequency: entity.FrequencyWeekly,
		StartDate: start,
		Items:     []usecase.RecurringItemInput{{ProductID: product.ID, Quantity: 3}},
	})

	require.NoError(t, err)
	assert.True(t, ro.IsActive)
	require.NotNil(t, ro.NextRunAt)
	// The first run is the start date itself, not start plus one period.
	assert.True(t, ro.NextRunAt.Equal(start))
	require.Len(t, ro.Items, 1)
	assert.Equal(t, "Salsa de soja", ro.Items[0].ProductNameES)
	assert.Equal(t, 3, ro.Items[0].Quantity)
}

func TestRecurringService_Create_PastStartSchedulesFromNow(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	product := newTestProduct("Salsa de soja", "4.20", 50)

	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.recurringRepo.On("Create", ctx, mock.AnythingOfType("*entity.RecurringOrder")).Return(nil)

	ro, err := fx.service.Create(ctx, customer, &usecase.RecurringOrderInput{
		Frequency: entity.FrequencyDaily,
		StartDate: time.Now().AddDate(0, 0, -3),
		Items:     []usecase.RecurringItemInput{{ProductID: product.ID, Quantity: 1}},
	})

	require.NoError(t, err)
	require.NotNil(t, ro.NextRunAt)
	assert.True(t, ro.NextRunAt.After(time.Now()))
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 1), *ro.NextRunAt, time.Minute)
}

func TestRecurringService_Create_InactiveProductRejected(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	product := newTestProduct("Retirado", "1.00", 0)
	product.IsActive = false

	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	ro, err := fx.service.Create(ctx, customer, &usecase.RecurringOrderInput{
		Frequency: entity.FrequencyDaily,
		StartDate: time.Now(),
		Items:     []usecase.RecurringItemInput{{ProductID: product.ID, Quantity: 1}},
	})

	assert.Nil(t, ro)
	assert.True(t, errors.Is(err, repository.ErrProductNotFound))
}

func TestRecurringService_Get_OtherCustomerHidden(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	template := &entity.RecurringOrder{ID: uuid.New(), CustomerID: uuid.New()}

	fx.recurringRepo.On("FindByID", ctx, template.ID).Return(template, nil)

	ro, err := fx.service.Get(ctx, customer, template.ID)

	assert.Nil(t, ro)
	assert.True(t, errors.Is(err, repository.ErrRecurringOrderNotFound))
}

func TestRecurringService_Get_StaffSeesAll(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	admin := newActiveUser(entity.RoleAdmin)
	template := &entity.RecurringOrder{ID: uuid.New(), CustomerID: uuid.New()}

	fx.recurringRepo.On("FindByID", ctx, template.ID).Return(template, nil)

	ro, err := fx.service.Get(ctx, admin, template.ID)

	require.NoError(t, err)
	assert.Equal(t, template, ro)
}

func TestRecurringService_SetActive_ResumeReschedules(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	customer := newActiveUser(entity.RoleUser)
	template := &entity.RecurringOrder{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		Frequency:  entity.FrequencyDaily,
		IsActive:   false,
	}

	fx.recurringRepo.On("FindByID", ctx, template.ID).Return(template, nil)
	fx.recurringRepo.On("Update", ctx, template).Return(nil)

	ro, err := fx.service.SetActive(ctx, customer, template.ID, true)

	require.NoError(t, err)
	assert.True(t, ro.IsActive)
	assert.NotNil(t, ro.NextRunAt)
}

func TestRecurringService_RunDue_MaterializesAndAdvances(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	now := time.Now()
	product := newTestProduct("Fideos", "2.50", 100)
	template := &entity.RecurringOrder{
		ID:                  uuid.New(),
		CustomerID:          uuid.New(),
		Frequency:           entity.FrequencyWeekly,
		IsActive:            true,
		DeliveryWindowHours: 4,
		Items: []*entity.RecurringOrderItem{
			{ProductID: product.ID, Quantity: 10},
		},
	}

	fx.recurringRepo.On("ListDue", ctx, now, 100).Return([]*entity.RecurringOrder{template}, nil)
	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.orderRepo.On("Create", ctx, mock.MatchedBy(func(order *entity.Order) bool {
		return order.CustomerID == template.CustomerID &&
			len(order.Items) == 1 &&
			order.ETAStart != nil && order.ETAEnd != nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Order).ID = uuid.New()
	}).Return(nil)
	fx.orderRepo.On("AppendEvent", ctx, mock.AnythingOfType("*entity.OrderEvent")).Return(nil)
	fx.notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.EventType == entity.EventOrderCreated
	})).Return(nil)
	fx.auditRepo.On("Append", ctx, mock.MatchedBy(func(log *entity.AuditLog) bool {
		return log.Action == entity.AuditOrderCreated
	})).Return(nil)
	fx.recurringRepo.On("Update", ctx, template).Return(nil)

	created, err := fx.service.RunDue(ctx, now)

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	require.NotNil(t, template.NextRunAt)
	assert.True(t, template.NextRunAt.After(now))
}

func TestRecurringService_RunDue_EndDatePassedDeactivates(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	now := time.Now()
	end := now.Add(12 * time.Hour)
	product := newTestProduct("Té verde", "6.00", 30)
	template := &entity.RecurringOrder{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Frequency:  entity.FrequencyWeekly,
		IsActive:   true,
		EndDate:    &end,
		Items: []*entity.RecurringOrderItem{
			{ProductID: product.ID, Quantity: 1},
		},
	}

	fx.recurringRepo.On("ListDue", ctx, now, 100).Return([]*entity.RecurringOrder{template}, nil)
	fx.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	fx.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Order).ID = uuid.New()
		}).Return(nil)
	fx.orderRepo.On("AppendEvent", ctx, mock.AnythingOfType("*entity.OrderEvent")).Return(nil)
	fx.notificationRepo.On("Create", ctx, mock.AnythingOfType("*entity.Notification")).Return(nil)
	fx.auditRepo.On("Append", ctx, mock.AnythingOfType("*entity.AuditLog")).Return(nil)
	fx.recurringRepo.On("Update", ctx, template).Return(nil)

	created, err := fx.service.RunDue(ctx, now)

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	// Next run would land past the end date, so the template retires itself.
	assert.Nil(t, template.NextRunAt)
	assert.False(t, template.IsActive)
}

func TestRecurringService_RunDue_SkipsTemplateWithNoPurchasableItems(t *testing.T) {
	fx := createTestRecurringService(t)
	ctx := context.Background()

	now := time.Now()
	template := &entity.RecurringOrder{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Frequency:  entity.FrequencyDaily,
		IsActive:   true,
		Items: []*entity.RecurringOrderItem{
			{ProductID: uuid.New(), Quantity: 2},
		},
	}

	fx.recurringRepo.On("ListDue", ctx, now, 100).Return([]*entity.RecurringOrder{template}, nil)
	fx.productRepo.On("FindByID", ctx, template.Items[0].ProductID).
		Return(nil, repository.ErrProductNotFound)

	created, err := fx.service.RunDue(ctx, now)

	require.NoError(t, err)
	assert.Equal(t, 0, created)
}
