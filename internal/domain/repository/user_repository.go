// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/rbac"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserFilter narrows user listings. It is always applied on top of the
// rbac visibility scope, never instead of it.
type UserFilter struct {
	Search string            // matches email or full name, case-insensitive
	Status entity.UserStatus // zero value means any status
	Role   entity.Role       // zero value means any role
	Limit  int
	Offset int
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// ListVisible returns the users inside the rbac scope, narrowed by the
	// filter and paginated. The scope predicate is applied at query level
	// before any search or status condition. The second return value is the
	// total row count inside the scope+filter, ignoring pagination.
	ListVisible(ctx context.Context, scope rbac.Visibility, filter UserFilter) ([]*entity.User, int64, error)
}
