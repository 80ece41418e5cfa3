package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "INTAKE_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation embedded by concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewIntakeCompleted announces that a conversation finished its intake and a
// structured record is available for downstream systems.
func NewIntakeCompleted(recordId, conversationKey, patientName string) Event {
	return BaseEvent{
		Type: "INTAKE_COMPLETED",
		Data: map[string]interface{}{
			"record_id":        recordId,
			"conversation_key": conversationKey,
			"patient_name":     patientName,
		},
		OccurredAt: time.Now().UTC(),
	}
}
