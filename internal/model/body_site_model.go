package model

import (
	"github.com/google/uuid"
)

type BodySite struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParentId  *uuid.UUID `gorm:"type:uuid;index"` // nil = root level
	Name      string     `gorm:"type:text;not null"`
	Level     int        `gorm:"not null;default:0"`
	SortOrder int        `gorm:"not null;default:0;index"`
}

func (BodySite) TableName() string {
	return "body_sites"
}
