package contract

import (
	"context"

	"clinic-intake-be/internal/entity"

	"github.com/google/uuid"
)

// BodySiteRepository serves the hierarchical catalog. ChildrenOf must return
// rows in stable sort-key order; nil parentId means the root level.
type BodySiteRepository interface {
	Create(ctx context.Context, site *entity.BodySite) error
	ChildrenOf(ctx context.Context, parentId *uuid.UUID) ([]*entity.BodySite, error)
	FindById(ctx context.Context, id uuid.UUID) (*entity.BodySite, error)
}

// SymptomRepository serves the flat catalog for one body-site leaf. An empty
// result is not an error.
type SymptomRepository interface {
	Create(ctx context.Context, symptom *entity.Symptom) error
	ItemsFor(ctx context.Context, bodySiteId uuid.UUID) ([]*entity.Symptom, error)
}
