package contract

import (
	"context"

	"clinic-intake-be/internal/entity"
)

type IntakeRecordRepository interface {
	Create(ctx context.Context, record *entity.IntakeRecord) error
	FindRecent(ctx context.Context, limit int) ([]*entity.IntakeRecord, error)
}
