package implementation

import (
	"context"

	"clinic-intake-be/internal/entity"
	"clinic-intake-be/internal/mapper"
	"clinic-intake-be/internal/model"
	"clinic-intake-be/internal/repository/contract"

	"gorm.io/gorm"
)

type IntakeRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntakeMapper
}

func NewIntakeRecordRepository(db *gorm.DB) contract.IntakeRecordRepository {
	return &IntakeRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntakeMapper(),
	}
}

func (r *IntakeRecordRepositoryImpl) Create(ctx context.Context, record *entity.IntakeRecord) error {
	m := r.mapper.RecordToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.RecordToEntity(m)
	return nil
}

func (r *IntakeRecordRepositoryImpl) FindRecent(ctx context.Context, limit int) ([]*entity.IntakeRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var models []*model.IntakeRecord
	if err := r.db.WithContext(ctx).
		Order("completed_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.IntakeRecord, len(models))
	for i, m := range models {
		out[i] = r.mapper.RecordToEntity(m)
	}
	return out, nil
}
