package entity

import (
	"time"

	"github.com/google/uuid"
)

// IntakeRecord is the structured result of one completed intake, the
// artifact handed to downstream processing.
type IntakeRecord struct {
	Id              uuid.UUID
	ConversationKey string
	PatientName     string
	PatientAge      *int
	Summary         string
	CompletedAt     time.Time
	CreatedAt       time.Time
}
