package service

import (
	"context"

	"clinic-intake-be/internal/repository/contract"
	"clinic-intake-be/pkg/dialog"

	"github.com/google/uuid"
)

// bodySiteTreeSource adapts the gorm-backed catalog to the dialog engine's
// TreeSource port.
type bodySiteTreeSource struct {
	repo contract.BodySiteRepository
}

func NewBodySiteTreeSource(repo contract.BodySiteRepository) dialog.TreeSource {
	return &bodySiteTreeSource{repo: repo}
}

func (s *bodySiteTreeSource) ChildrenOf(ctx context.Context, parentId *uuid.UUID) ([]dialog.Node, error) {
	sites, err := s.repo.ChildrenOf(ctx, parentId)
	if err != nil {
		return nil, err
	}
	nodes := make([]dialog.Node, len(sites))
	for i, site := range sites {
		nodes[i] = dialog.Node{
			Id:          site.Id,
			ParentId:    site.ParentId,
			Name:        site.Name,
			Level:       site.Level,
			HasChildren: site.HasChildren,
		}
	}
	return nodes, nil
}

type symptomItemSource struct {
	repo contract.SymptomRepository
}

func NewSymptomItemSource(repo contract.SymptomRepository) dialog.ItemSource {
	return &symptomItemSource{repo: repo}
}

func (s *symptomItemSource) ItemsFor(ctx context.Context, contextId uuid.UUID) ([]dialog.Item, error) {
	symptoms, err := s.repo.ItemsFor(ctx, contextId)
	if err != nil {
		return nil, err
	}
	items := make([]dialog.Item, len(symptoms))
	for i, sym := range symptoms {
		items[i] = dialog.Item{Id: sym.Id, Name: sym.Name, SortOrder: sym.SortOrder}
	}
	return items, nil
}
