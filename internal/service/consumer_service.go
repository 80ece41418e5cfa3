package service

import (
	"context"
	"encoding/json"

	"clinic-intake-be/internal/dto"
	"clinic-intake-be/internal/entity"
	"clinic-intake-be/internal/pkg/logger"
	"clinic-intake-be/internal/pkg/mailer"
	"clinic-intake-be/internal/repository/contract"
	"clinic-intake-be/pkg/events"
	pktNats "clinic-intake-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the intake-completed topic: persists the record,
// announces it on NATS, and emails the clinic inbox when one is configured.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	records        contract.IntakeRecordRepository
	eventPublisher *pktNats.Publisher
	emailService   mailer.IEmailService
	clinicInbox    string
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	records contract.IntakeRecordRepository,
	eventPublisher *pktNats.Publisher,
	emailService mailer.IEmailService,
	clinicInbox string,
	sysLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		records:        records,
		eventPublisher: eventPublisher,
		emailService:   emailService,
		clinicInbox:    clinicInbox,
		logger:         sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIntakeCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "unmarshal intake-completed message failed", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	record := entity.IntakeRecord{
		Id:              uuid.New(),
		ConversationKey: payload.ConversationKey,
		PatientName:     payload.PatientName,
		PatientAge:      payload.PatientAge,
		Summary:         payload.Summary,
		CompletedAt:     payload.CompletedAt,
	}
	if err := cs.records.Create(ctx, &record); err != nil {
		cs.logger.Error("consumer", "persist intake record failed", map[string]interface{}{
			"key":   payload.ConversationKey,
			"error": err.Error(),
		})
		msg.Nack() // Retriable
		return
	}

	if cs.eventPublisher != nil {
		evt := events.NewIntakeCompleted(record.Id.String(), record.ConversationKey, record.PatientName)
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("consumer", "NATS announce failed", map[string]interface{}{
				"record_id": record.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	if cs.emailService != nil && cs.clinicInbox != "" {
		if err := cs.emailService.SendIntakeSummary(cs.clinicInbox, record.PatientName, record.Summary); err != nil {
			cs.logger.Warn("consumer", "summary email failed", map[string]interface{}{
				"record_id": record.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	cs.logger.Info("consumer", "intake record stored", map[string]interface{}{
		"record_id": record.Id.String(),
		"key":       record.ConversationKey,
	})
	msg.Ack()
}
