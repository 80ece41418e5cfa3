package implementation

import (
	"context"

	"clinic-intake-be/internal/entity"
	"clinic-intake-be/internal/mapper"
	"clinic-intake-be/internal/model"
	"clinic-intake-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SymptomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewSymptomRepository(db *gorm.DB) contract.SymptomRepository {
	return &SymptomRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *SymptomRepositoryImpl) Create(ctx context.Context, symptom *entity.Symptom) error {
	m := r.mapper.SymptomToModel(symptom)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	symptom.Id = m.Id
	return nil
}

func (r *SymptomRepositoryImpl) ItemsFor(ctx context.Context, bodySiteId uuid.UUID) ([]*entity.Symptom, error) {
	var models []*model.Symptom
	if err := r.db.WithContext(ctx).
		Where("body_site_id = ?", bodySiteId).
		Order("sort_order ASC, name ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Symptom, len(models))
	for i, m := range models {
		out[i] = r.mapper.SymptomToEntity(m)
	}
	return out, nil
}
