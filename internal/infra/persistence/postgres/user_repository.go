package postgres

import (
	"context"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/rbac"
	"fenix/internal/domain/repository"
	"fenix/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user. The derived profile flag is recomputed before
// the write so it can never be set from external input.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	user.RefreshProfileCompleted()
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user row, recomputing the derived profile flag.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	user.RefreshProfileCompleted()
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(userM)

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUserAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// ListVisible returns users inside the rbac scope, narrowed by the filter.
// The scope predicate is attached first so a crafted search or pagination
// window can never reach out-of-scope rows.
func (repo *userRepository) ListVisible(ctx context.Context, scope rbac.Visibility, filter repository.UserFilter) ([]*entity.User, int64, error) {
	if scope.Kind == rbac.VisibilityNone {
		return []*entity.User{}, 0, nil
	}

	query := repo.db.WithContext(ctx).Model(&model.UserModel{})

	switch scope.Kind {
	case rbac.VisibilityExcludeSuperAdmins:
		query = query.Where("role <> ?", entity.RoleSuperAdmin.String())
	case rbac.VisibilitySelfOnly:
		query = query.Where("id = ?", scope.SelfID)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR full_name ILIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var userModels []*model.UserModel
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userModels))
	for _, userM := range userModels {
		users = append(users, toUserDomain(userM))
	}

	return users, total, nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:            data.ID,
		Email:         data.Email,
		PasswordHash:  data.PasswordHash,
		FullName:      data.FullName,
		Role:          entity.Role(data.Role),
		Status:        entity.UserStatus(data.Status),
		Language:      entity.Language(data.Language),
		EmailVerified: data.EmailVerified,

		CompanyPhone:       data.CompanyPhone,
		DeliveryPhone:      data.DeliveryPhone,
		FiscalAddress:      data.FiscalAddress,
		FiscalCity:         data.FiscalCity,
		FiscalProvince:     data.FiscalProvince,
		FiscalPostalCode:   data.FiscalPostalCode,
		Country:            data.Country,
		DeliveryType:       data.DeliveryType,
		DeliveryAddress:    data.DeliveryAddress,
		DeliveryCity:       data.DeliveryCity,
		DeliveryProvince:   data.DeliveryProvince,
		DeliveryPostalCode: data.DeliveryPostalCode,
		DeliveryWindow:     data.DeliveryWindow,
		DeliveryNotes:      data.DeliveryNotes,

		ProfileCompleted: data.ProfileCompleted,
		ApprovedBy:       data.ApprovedBy,
		ApprovedAt:       data.ApprovedAt,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(user *entity.User) *model.UserModel {
	if user == nil {
		return nil
	}

	return &model.UserModel{
		ID:            user.ID,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		FullName:      user.FullName,
		Role:          user.Role.String(),
		Status:        user.Status.String(),
		Language:      string(user.Language),
		EmailVerified: user.EmailVerified,

		CompanyPhone:       user.CompanyPhone,
		DeliveryPhone:      user.DeliveryPhone,
		FiscalAddress:      user.FiscalAddress,
		FiscalCity:         user.FiscalCity,
		FiscalProvince:     user.FiscalProvince,
		FiscalPostalCode:   user.FiscalPostalCode,
		Country:            user.Country,
		DeliveryType:       user.DeliveryType,
		DeliveryAddress:    user.DeliveryAddress,
		DeliveryCity:       user.DeliveryCity,
		DeliveryProvince:   user.DeliveryProvince,
		DeliveryPostalCode: user.DeliveryPostalCode,
		DeliveryWindow:     user.DeliveryWindow,
		DeliveryNotes:      user.DeliveryNotes,

		ProfileCompleted: user.ProfileCompleted,
		ApprovedBy:       user.ApprovedBy,
		ApprovedAt:       user.ApprovedAt,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}
