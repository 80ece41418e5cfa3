package dto

import "time"

// PublishIntakeCompletedMessage travels over the in-process event bus from
// the turn handler to the consumer that persists and announces the record.
type PublishIntakeCompletedMessage struct {
	ConversationKey string    `json:"conversation_key"`
	PatientName     string    `json:"patient_name"`
	PatientAge      *int      `json:"patient_age,omitempty"`
	Summary         string    `json:"summary"`
	CompletedAt     time.Time `json:"completed_at"`
}
