// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"fenix/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new customer account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Language string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries the operative profile fields a customer may
// edit on their own account. Nil pointers leave the field untouched.
type UpdateProfileInput struct {
	FullName           *string
	Language           *string
	CompanyPhone       *string
	DeliveryPhone      *string
	FiscalAddress      *string
	FiscalCity         *string
	FiscalProvince     *string
	FiscalPostalCode   *string
	Country            *string
	DeliveryType       *string
	DeliveryAddress    *string
	DeliveryCity       *string
	DeliveryProvince   *string
	DeliveryPostalCode *string
	DeliveryWindow     *string
	DeliveryNotes      *string
}

// ListUsersInput narrows the user listing. Visibility scoping is derived
// from the requester and always applied on top of these filters.
type ListUsersInput struct {
	Search string
	Status string
	Role   string
	Limit  int
	Offset int
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// ProfileOutput bundles a user with the localized labels of the operative
// fields still missing before they can place orders.
type ProfileOutput struct {
	User          *entity.User
	MissingFields []string
}

// ListUsersOutput returns one page of visible users plus the total count.
type ListUsersOutput struct {
	Users []*entity.User
	Total int64
}

// UserUsecase defines the interface for account and access operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	GetProfile(ctx context.Context, requester *entity.User) (*ProfileOutput, error)
	UpdateProfile(ctx context.Context, requester *entity.User, input *UpdateProfileInput) (*ProfileOutput, error)

	// GetUser loads a single account, subject to the requester's visibility.
	GetUser(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.User, error)
	ListUsers(ctx context.Context, requester *entity.User, input *ListUsersInput) (*ListUsersOutput, error)

	// ApproveUser activates a pending account and stamps the approver.
	ApproveUser(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.User, error)
	RejectUser(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.User, error)

	// DisableUser soft-deletes an account by moving it to the disabled
	// status. Requesters can never disable themselves.
	DisableUser(ctx context.Context, requester *entity.User, id uuid.UUID) error

	// AssignRole changes the target's role within the requester's grant.
	AssignRole(ctx context.Context, requester *entity.User, id uuid.UUID, role entity.Role) (*entity.User, error)
}
