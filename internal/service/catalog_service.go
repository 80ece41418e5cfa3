package service

import (
	"context"
	"fmt"

	"clinic-intake-be/internal/dto"
	"clinic-intake-be/internal/entity"
	"clinic-intake-be/internal/repository/contract"

	"github.com/google/uuid"
)

type ICatalogService interface {
	CreateBodySite(ctx context.Context, req *dto.CreateBodySiteRequest) (*dto.BodySiteResponse, error)
	ListBodySites(ctx context.Context, parentId *uuid.UUID) ([]*dto.BodySiteResponse, error)
	CreateSymptom(ctx context.Context, req *dto.CreateSymptomRequest) (*dto.SymptomResponse, error)
	ListSymptoms(ctx context.Context, bodySiteId uuid.UUID) ([]*dto.SymptomResponse, error)
	ListIntakes(ctx context.Context, limit int) ([]*dto.IntakeRecordResponse, error)
}

type catalogService struct {
	bodySites contract.BodySiteRepository
	symptoms  contract.SymptomRepository
	records   contract.IntakeRecordRepository
}

func NewCatalogService(
	bodySites contract.BodySiteRepository,
	symptoms contract.SymptomRepository,
	records contract.IntakeRecordRepository,
) ICatalogService {
	return &catalogService{
		bodySites: bodySites,
		symptoms:  symptoms,
		records:   records,
	}
}

func (c *catalogService) CreateBodySite(ctx context.Context, req *dto.CreateBodySiteRequest) (*dto.BodySiteResponse, error) {
	level := 0
	if req.ParentId != nil {
		parent, err := c.bodySites.FindById(ctx, *req.ParentId)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("parent body site %s not found", req.ParentId)
		}
		level = parent.Level + 1
	}

	site := entity.BodySite{
		Id:        uuid.New(),
		ParentId:  req.ParentId,
		Name:      req.Name,
		Level:     level,
		SortOrder: req.SortOrder,
	}
	if err := c.bodySites.Create(ctx, &site); err != nil {
		return nil, err
	}
	return bodySiteToResponse(&site), nil
}

func (c *catalogService) ListBodySites(ctx context.Context, parentId *uuid.UUID) ([]*dto.BodySiteResponse, error) {
	sites, err := c.bodySites.ChildrenOf(ctx, parentId)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BodySiteResponse, len(sites))
	for i, s := range sites {
		out[i] = bodySiteToResponse(s)
	}
	return out, nil
}

func (c *catalogService) CreateSymptom(ctx context.Context, req *dto.CreateSymptomRequest) (*dto.SymptomResponse, error) {
	site, err := c.bodySites.FindById(ctx, req.BodySiteId)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, fmt.Errorf("body site %s not found", req.BodySiteId)
	}

	symptom := entity.Symptom{
		Id:         uuid.New(),
		BodySiteId: req.BodySiteId,
		Name:       req.Name,
		SortOrder:  req.SortOrder,
	}
	if err := c.symptoms.Create(ctx, &symptom); err != nil {
		return nil, err
	}
	return symptomToResponse(&symptom), nil
}

func (c *catalogService) ListSymptoms(ctx context.Context, bodySiteId uuid.UUID) ([]*dto.SymptomResponse, error) {
	symptoms, err := c.symptoms.ItemsFor(ctx, bodySiteId)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SymptomResponse, len(symptoms))
	for i, s := range symptoms {
		out[i] = symptomToResponse(s)
	}
	return out, nil
}

func (c *catalogService) ListIntakes(ctx context.Context, limit int) ([]*dto.IntakeRecordResponse, error) {
	records, err := c.records.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.IntakeRecordResponse, len(records))
	for i, r := range records {
		out[i] = &dto.IntakeRecordResponse{
			Id:              r.Id,
			ConversationKey: r.ConversationKey,
			PatientName:     r.PatientName,
			PatientAge:      r.PatientAge,
			Summary:         r.Summary,
			CompletedAt:     r.CompletedAt,
		}
	}
	return out, nil
}

func bodySiteToResponse(s *entity.BodySite) *dto.BodySiteResponse {
	return &dto.BodySiteResponse{
		Id:          s.Id,
		ParentId:    s.ParentId,
		Name:        s.Name,
		Level:       s.Level,
		SortOrder:   s.SortOrder,
		HasChildren: s.HasChildren,
	}
}

func symptomToResponse(s *entity.Symptom) *dto.SymptomResponse {
	return &dto.SymptomResponse{
		Id:         s.Id,
		BodySiteId: s.BodySiteId,
		Name:       s.Name,
		SortOrder:  s.SortOrder,
	}
}
