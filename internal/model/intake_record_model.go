package model

import (
	"time"

	"github.com/google/uuid"
)

type IntakeRecord struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationKey string    `gorm:"type:text;not null;index"`
	PatientName     string    `gorm:"type:text;not null"`
	PatientAge      *int      `gorm:""`
	Summary         string    `gorm:"type:text;not null"`
	CompletedAt     time.Time `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (IntakeRecord) TableName() string {
	return "intake_records"
}
