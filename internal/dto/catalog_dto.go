package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBodySiteRequest struct {
	ParentId  *uuid.UUID `json:"parent_id"`
	Name      string     `json:"name" validate:"required"`
	SortOrder int        `json:"sort_order"`
}

type BodySiteResponse struct {
	Id          uuid.UUID  `json:"id"`
	ParentId    *uuid.UUID `json:"parent_id,omitempty"`
	Name        string     `json:"name"`
	Level       int        `json:"level"`
	SortOrder   int        `json:"sort_order"`
	HasChildren bool       `json:"has_children"`
}

type CreateSymptomRequest struct {
	BodySiteId uuid.UUID `json:"body_site_id" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	SortOrder  int       `json:"sort_order"`
}

type SymptomResponse struct {
	Id         uuid.UUID `json:"id"`
	BodySiteId uuid.UUID `json:"body_site_id"`
	Name       string    `json:"name"`
	SortOrder  int       `json:"sort_order"`
}

type IntakeRecordResponse struct {
	Id              uuid.UUID `json:"id"`
	ConversationKey string    `json:"conversation_key"`
	PatientName     string    `json:"patient_name"`
	PatientAge      *int      `json:"patient_age,omitempty"`
	Summary         string    `json:"summary"`
	CompletedAt     time.Time `json:"completed_at"`
}
