package postgres

import (
	"context"

	"fenix/internal/domain/entity"
	domainerrors "fenix/internal/domain/errors"
	"fenix/internal/domain/repository"
	"fenix/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// auditRepository implements the repository.AuditRepository interface.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository is the constructor for auditRepository.
func NewAuditRepository(db *gorm.DB) repository.AuditRepository {
	return &auditRepository{
		db: db,
	}
}

// Append persists one audit entry. Rows are never updated or deleted.
func (repo *auditRepository) Append(ctx context.Context, log *entity.AuditLog) error {
	logM := &model.AuditLogModel{
		ActorID:  log.ActorID,
		Action:   string(log.Action),
		TargetID: log.TargetID,
		Detail:   log.Detail,
	}

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append audit log")
	}

	log.ID = logM.ID
	log.CreatedAt = logM.CreatedAt

	return nil
}

// List returns audit entries narrowed by the filter, newest first.
func (repo *auditRepository) List(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditLog, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.AuditLogModel{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}
	if filter.TargetID != nil {
		query = query.Where("target_id = ?", *filter.TargetID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", string(filter.Action))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count audit logs")
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var logModels []*model.AuditLogModel
	if err := query.Find(&logModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list audit logs")
	}

	logs := make([]*entity.AuditLog, 0, len(logModels))
	for _, logM := range logModels {
		logs = append(logs, &entity.AuditLog{
			ID:        logM.ID,
			ActorID:   logM.ActorID,
			Action:    entity.AuditAction(logM.Action),
			TargetID:  logM.TargetID,
			Detail:    logM.Detail,
			CreatedAt: logM.CreatedAt,
		})
	}

	return logs, total, nil
}
