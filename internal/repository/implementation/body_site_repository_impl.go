package implementation

import (
	"context"
	"errors"

	"clinic-intake-be/internal/entity"
	"clinic-intake-be/internal/mapper"
	"clinic-intake-be/internal/model"
	"clinic-intake-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BodySiteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewBodySiteRepository(db *gorm.DB) contract.BodySiteRepository {
	return &BodySiteRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *BodySiteRepositoryImpl) Create(ctx context.Context, site *entity.BodySite) error {
	m := r.mapper.BodySiteToModel(site)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	site.Id = m.Id
	return nil
}

func (r *BodySiteRepositoryImpl) ChildrenOf(ctx context.Context, parentId *uuid.UUID) ([]*entity.BodySite, error) {
	var models []*model.BodySite
	query := r.db.WithContext(ctx).Order("sort_order ASC, name ASC")
	if parentId == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentId)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}

	// One extra query resolves which children are themselves parents, so the
	// navigator can render without N+1 lookups.
	ids := make([]uuid.UUID, len(models))
	for i, m := range models {
		ids[i] = m.Id
	}
	var parentIds []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.BodySite{}).
		Distinct("parent_id").
		Where("parent_id IN ?", ids).
		Pluck("parent_id", &parentIds).Error; err != nil {
		return nil, err
	}
	hasChildren := make(map[uuid.UUID]bool, len(parentIds))
	for _, id := range parentIds {
		hasChildren[id] = true
	}

	out := make([]*entity.BodySite, len(models))
	for i, m := range models {
		out[i] = r.mapper.BodySiteToEntity(m, hasChildren[m.Id])
	}
	return out, nil
}

func (r *BodySiteRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.BodySite, error) {
	var m model.BodySite
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.BodySite{}).Where("parent_id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	return r.mapper.BodySiteToEntity(&m, count > 0), nil
}
