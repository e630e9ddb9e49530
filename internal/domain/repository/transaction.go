package repository

import "context"

// RepositoryFactory hands out repositories bound to the same transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	ProductRepo() ProductRepository
	OrderRepo() OrderRepository
	CartRepo() CartRepository
	NotificationRepo() NotificationRepository
	RecurringRepo() RecurringOrderRepository
	SettingsRepo() SettingsRepository
	AuditRepo() AuditRepository
}

// TransactionManager runs a function inside a database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(factory RepositoryFactory) error) error
}
