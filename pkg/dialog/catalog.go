package dialog

import (
	"context"

	"github.com/google/uuid"
)

// Node is one entry of the hierarchical catalog (body-site taxonomy).
type Node struct {
	Id          uuid.UUID
	ParentId    *uuid.UUID
	Name        string
	Level       int
	HasChildren bool
}

// Item is one entry of a flat catalog (symptoms valid for a resolved leaf).
type Item struct {
	Id        uuid.UUID
	Name      string
	SortOrder int
}

// TreeSource serves ordered children of a tree node. A nil parent means the
// root level. Ordering must be a stable explicit sort key.
type TreeSource interface {
	ChildrenOf(ctx context.Context, parentId *uuid.UUID) ([]Node, error)
}

// ItemSource serves the ordered flat catalog valid for one context (a tree
// leaf). An empty result is legal and triggers the free-text fallback.
type ItemSource interface {
	ItemsFor(ctx context.Context, contextId uuid.UUID) ([]Item, error)
}
