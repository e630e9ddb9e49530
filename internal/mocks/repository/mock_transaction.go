package mockrepo

import (
	"context"

	"fenix/internal/domain/repository"
)

// StubRepositoryFactory hands out the repositories assigned to its fields.
// Tests populate only the repos the code under test touches.
type StubRepositoryFactory struct {
	Users         repository.UserRepository
	Products      repository.ProductRepository
	Orders        repository.OrderRepository
	Carts         repository.CartRepository
	Notifications repository.NotificationRepository
	Recurring     repository.RecurringOrderRepository
	Settings      repository.SettingsRepository
	Audit         repository.AuditRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository         { return f.Users }
func (f *StubRepositoryFactory) ProductRepo() repository.ProductRepository   { return f.Products }
func (f *StubRepositoryFactory) OrderRepo() repository.OrderRepository       { return f.Orders }
func (f *StubRepositoryFactory) CartRepo() repository.CartRepository         { return f.Carts }
func (f *StubRepositoryFactory) NotificationRepo() repository.NotificationRepository {
	return f.Notifications
}
func (f *StubRepositoryFactory) RecurringRepo() repository.RecurringOrderRepository {
	return f.Recurring
}
func (f *StubRepositoryFactory) SettingsRepo() repository.SettingsRepository { return f.Settings }
func (f *StubRepositoryFactory) AuditRepo() repository.AuditRepository       { return f.Audit }

// StubTransactionManager runs the unit of work against a fixed factory with
// no real transaction underneath. The returned error mirrors the callback's,
// matching commit-on-nil semantics.
type StubTransactionManager struct {
	Factory repository.RepositoryFactory
}

func (m *StubTransactionManager) Execute(ctx context.Context, fn func(factory repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
