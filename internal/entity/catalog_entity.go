package entity

import (
	"github.com/google/uuid"
)

// BodySite is one node of the complaint-location taxonomy. A nil ParentId
// marks a root node; a node without children is a selectable leaf.
type BodySite struct {
	Id          uuid.UUID
	ParentId    *uuid.UUID
	Name        string
	Level       int
	SortOrder   int
	HasChildren bool
}

// Symptom is one selectable item of the flat catalog attached to a body-site
// leaf.
type Symptom struct {
	Id         uuid.UUID
	BodySiteId uuid.UUID
	Name       string
	SortOrder  int
}
