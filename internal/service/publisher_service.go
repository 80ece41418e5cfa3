package service

import (
	"encoding/json"
	"fmt"

	"clinic-intake-be/internal/dto"
	"clinic-intake-be/pkg/dialog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService hands completed intake records to the in-process event
// bus; the consumer side owns persistence and external announcements.
type IPublisherService interface {
	PublishIntakeCompleted(record *dialog.Record) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishIntakeCompleted(record *dialog.Record) error {
	payload := dto.PublishIntakeCompletedMessage{
		ConversationKey: record.ConversationKey,
		PatientName:     record.PatientName,
		PatientAge:      record.PatientAge,
		Summary:         record.Summary,
		CompletedAt:     record.CompletedAt,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal intake-completed payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	return ps.pubSub.Publish(ps.topicName, msg)
}
