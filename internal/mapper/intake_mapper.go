package mapper

import (
	"clinic-intake-be/internal/entity"
	"clinic-intake-be/internal/model"
)

type IntakeMapper struct{}

func NewIntakeMapper() *IntakeMapper {
	return &IntakeMapper{}
}

func (m *IntakeMapper) RecordToEntity(mod *model.IntakeRecord) *entity.IntakeRecord {
	return &entity.IntakeRecord{
		Id:              mod.Id,
		ConversationKey: mod.ConversationKey,
		PatientName:     mod.PatientName,
		PatientAge:      mod.PatientAge,
		Summary:         mod.Summary,
		CompletedAt:     mod.CompletedAt,
		CreatedAt:       mod.CreatedAt,
	}
}

func (m *IntakeMapper) RecordToModel(e *entity.IntakeRecord) *model.IntakeRecord {
	return &model.IntakeRecord{
		Id:              e.Id,
		ConversationKey: e.ConversationKey,
		PatientName:     e.PatientName,
		PatientAge:      e.PatientAge,
		Summary:         e.Summary,
		CompletedAt:     e.CompletedAt,
		CreatedAt:       e.CreatedAt,
	}
}
