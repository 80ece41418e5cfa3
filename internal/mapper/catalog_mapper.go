package mapper

import (
	"clinic-intake-be/internal/entity"
	"clinic-intake-be/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) BodySiteToEntity(mod *model.BodySite, hasChildren bool) *entity.BodySite {
	return &entity.BodySite{
		Id:          mod.Id,
		ParentId:    mod.ParentId,
		Name:        mod.Name,
		Level:       mod.Level,
		SortOrder:   mod.SortOrder,
		HasChildren: hasChildren,
	}
}

func (m *CatalogMapper) BodySiteToModel(e *entity.BodySite) *model.BodySite {
	return &model.BodySite{
		Id:        e.Id,
		ParentId:  e.ParentId,
		Name:      e.Name,
		Level:     e.Level,
		SortOrder: e.SortOrder,
	}
}

func (m *CatalogMapper) SymptomToEntity(mod *model.Symptom) *entity.Symptom {
	return &entity.Symptom{
		Id:         mod.Id,
		BodySiteId: mod.BodySiteId,
		Name:       mod.Name,
		SortOrder:  mod.SortOrder,
	}
}

func (m *CatalogMapper) SymptomToModel(e *entity.Symptom) *model.Symptom {
	return &model.Symptom{
		Id:         e.Id,
		BodySiteId: e.BodySiteId,
		Name:       e.Name,
		SortOrder:  e.SortOrder,
	}
}
