package model

import (
	"github.com/google/uuid"
)

type Symptom struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BodySiteId uuid.UUID `gorm:"type:uuid;not null;index"` // leaf the symptom list belongs to
	Name       string    `gorm:"type:text;not null"`
	SortOrder  int       `gorm:"not null;default:0;index"`
}

func (Symptom) TableName() string {
	return "symptoms"
}
