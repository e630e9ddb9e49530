// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
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

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	auditRepo    repository.AuditRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SettingsRepo repository.SettingsRepository
	AuditRepo    repository.AuditRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		settingsRepo: params.SettingsRepo,
		auditRepo:    params.AuditRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new customer account in the pending status. The account
// cannot log in until staff approves it.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Info("Registering account", slog.String("email", email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	lang := entity.Language(input.Language)
	if lang != entity.LanguageES && lang != entity.LanguageZhHans {
		lang = ""
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         entity.RoleUser,
		Status:       entity.UserStatusPending,
		Language:     lang,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &usecase.RegisterOutput{User: user}, nil
}

// Login authenticates by email and password. Only active accounts get a
// token; the other statuses map to distinct errors so the client can show
// the right message.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, err
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	switch user.Status {
	case entity.UserStatusActive:
		// proceed
	case entity.UserStatusPending:
		return nil, domainerrors.ErrAccountPending
	case entity.UserStatusRejected:
		return nil, domainerrors.ErrAccountRejected
	default:
		return nil, domainerrors.ErrAccountDisabled
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.appendAudit(ctx, &entity.AuditLog{
		ActorID: &user.ID,
		Action:  entity.AuditUserLogin,
		Detail:  user.Email,
	})

	return &usecase.LoginOutput{AccessToken: token, User: user}, nil
}

// GetProfile returns the requester's own record with the missing operative
// field labels in their language.
func (srv *userService) GetProfile(ctx context.Context, requester *entity.User) (*usecase.ProfileOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	user, err := srv.userRepo.FindByID(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	return &usecase.ProfileOutput{
		User:          user,
		MissingFields: user.MissingProfileFields(srv.resolveLanguage(ctx, user)),
	}, nil
}

// UpdateProfile applies the customer's own profile edits. The derived
// completeness flag is recomputed by the persistence path.
func (srv *userService) UpdateProfile(ctx context.Context, requester *entity.User, input *usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	if requester == nil {
		return nil, domainerrors.ErrForbidden
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		userRepo := factory.UserRepo()

		user, err := userRepo.FindByID(ctx, requester.ID)
		if err != nil {
			return err
		}

		applyProfileInput(user, input)

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &usecase.ProfileOutput{
		User:          updated,
		MissingFields: updated.MissingProfileFields(srv.resolveLanguage(ctx, updated)),
	}, nil
}

// GetUser loads one account, enforcing the requester's visibility scope.
func (srv *userService) GetUser(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rbac.VisibleScope(requester).Allows(user) {
		// Out-of-scope records read as absent, not as forbidden.
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

// ListUsers returns the accounts visible to the requester. The visibility
// scope is pushed into the query ahead of the narrowing filters.
func (srv *userService) ListUsers(ctx context.Context, requester *entity.User, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	scope := rbac.VisibleScope(requester)

	filter := repository.UserFilter{
		Search: strings.TrimSpace(input.Search),
		Status: entity.UserStatus(input.Status),
		Role:   entity.Role(input.Role),
		Limit:  input.Limit,
		Offset: input.Offset,
	}

	users, total, err := srv.userRepo.ListVisible(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	return &usecase.ListUsersOutput{Users: users, Total: total}, nil
}

// ApproveUser activates a pending account and stamps the approver.
func (srv *userService) ApproveUser(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.User, error) {
	return srv.reviewAccount(ctx, requester, id, entity.UserStatusActive)
}

// RejectUser declines a pending registration.
func (srv *userService) RejectUser(ctx context.Context, requester *entity.User, id uuid.UUID) (*entity.User, error) {
	return srv.reviewAccount(ctx, requester, id, entity.UserStatusRejected)
}

func (srv *userService) reviewAccount(ctx context.Context, requester *entity.User, id uuid.UUID, verdict entity.UserStatus) (*entity.User, error) {
	if !rbac.CanManageUsers(requester) {
		return nil, domainerrors.ErrForbidden
	}

	var reviewed *entity.User
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		userRepo := factory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !rbac.VisibleScope(requester).Allows(user) {
			return repository.ErrUserNotFound
		}
		if user.Role == entity.RoleSuperAdmin {
			return domainerrors.ErrSuperAdminImmutable
		}

		now := time.Now()
		user.Status = verdict
		user.ApprovedBy = &requester.ID
		user.ApprovedAt = &now
		if verdict == entity.UserStatusActive {
			// Approval doubles as email verification: the address was the
			// registration identity staff just reviewed.
			user.EmailVerified = true
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}

		action := entity.AuditUserApproved
		if verdict == entity.UserStatusRejected {
			action = entity.AuditUserRejected
		}
		if err := factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &requester.ID,
			Action:   action,
			TargetID: &user.ID,
			Detail:   user.Email,
		}); err != nil {
			return err
		}

		reviewed = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account reviewed",
		slog.String("target", reviewed.Email),
		slog.String("verdict", reviewed.Status.String()),
	)

	return reviewed, nil
}

// DisableUser soft-deletes an account by moving it to the disabled status.
// The record survives so order history keeps its customer reference.
func (srv *userService) DisableUser(ctx context.Context, requester *entity.User, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		userRepo := factory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !rbac.CanDelete(requester, user) {
			return domainerrors.ErrForbidden
		}
		if user.Role == entity.RoleSuperAdmin {
			return domainerrors.ErrSuperAdminImmutable
		}

		user.Status = entity.UserStatusDisabled

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}

		return factory.AuditRepo().Append(ctx, &entity.AuditLog{
			ActorID:  &requester.ID,
			Action:   entity.AuditUserDisabled,
			TargetID: &user.ID,
			Detail:   user.Email,
		})
	})
}

// AssignRole changes the target's role within the requester's grant. Super
// admin accounts can never be retargeted through this path.
func (srv *userService) AssignRole(ctx context.Context, requester *entity.User, id uuid.UUID, role entity.Role) (*entity.User, error) {
	if !rbac.CanAssignRole(requester, role) {
		return nil, domainerrors.ErrForbidden
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		userRepo := factory.UserRepo()

		user, err := userRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !rbac.CanEdit(requester, user) {
			return domainerrors.ErrForbidden
		}
		if user.Role == entity.RoleSuperAdmin {
			return domainerrors.ErrSuperAdminImmutable
		}

		user.Role = role

		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// resolveLanguage falls back from the user's language to the platform default.
func (srv *userService) resolveLanguage(ctx context.Context, user *entity.User) entity.Language {
	platformDefault := entity.LanguageES
	if settings, err := srv.settingsRepo.Get(ctx); err == nil {
		platformDefault = settings.DefaultLanguage
	}

	return entity.ResolveLanguage(user.Language, platformDefault)
}

// appendAudit records an entry outside a transaction, logging failures
// instead of failing the caller.
func (srv *userService) appendAudit(ctx context.Context, log *entity.AuditLog) {
	if err := srv.auditRepo.Append(ctx, log); err != nil {
		srv.log(ctx).Warn("Failed to append audit log",
			slog.String("action", string(log.Action)),
			slog.String("error", err.Error()),
		)
	}
}

func applyProfileInput(user *entity.User, input *usecase.UpdateProfileInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	setString(&user.FullName, input.FullName)
	if input.Language != nil {
		lang := entity.Language(*input.Language)
		if lang == entity.LanguageES || lang == entity.LanguageZhHans {
			user.Language = lang
		}
	}
	setString(&user.CompanyPhone, input.CompanyPhone)
	setString(&user.DeliveryPhone, input.DeliveryPhone)
	setString(&user.FiscalAddress, input.FiscalAddress)
	setString(&user.FiscalCity, input.FiscalCity)
	setString(&user.FiscalProvince, input.FiscalProvince)
	setString(&user.FiscalPostalCode, input.FiscalPostalCode)
	setString(&user.Country, input.Country)
	setString(&user.DeliveryType, input.DeliveryType)
	setString(&user.DeliveryAddress, input.DeliveryAddress)
	setString(&user.DeliveryCity, input.DeliveryCity)
	setString(&user.DeliveryProvince, input.DeliveryProvince)
	setString(&user.DeliveryPostalCode, input.DeliveryPostalCode)
	setString(&user.DeliveryWindow, input.DeliveryWindow)
	setString(&user.DeliveryNotes, input.DeliveryNotes)
}
