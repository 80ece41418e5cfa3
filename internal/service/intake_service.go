package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-intake-be/internal/pkg/logger"
	"clinic-intake-be/internal/repository/contract"
	"clinic-intake-be/pkg/dialog"
)

// IIntakeService turns one inbound message into exactly one reply. It never
// returns an empty reply: collaborator failures degrade to a generic retry
// message instead of surfacing to the remote party.
type IIntakeService interface {
	HandleMessage(ctx context.Context, from, text string) string
}

type intakeService struct {
	sessions    contract.SessionStore
	machine     *dialog.Machine
	publisher   IPublisherService
	logger      logger.ILogger
	turnTimeout time.Duration
}

func NewIntakeService(
	sessions contract.SessionStore,
	machine *dialog.Machine,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	turnTimeout time.Duration,
) IIntakeService {
	if turnTimeout <= 0 {
		turnTimeout = 10 * time.Second
	}
	return &intakeService{
		sessions:    sessions,
		machine:     machine,
		publisher:   publisher,
		logger:      sysLogger,
		turnTimeout: turnTimeout,
	}
}

func (s *intakeService) HandleMessage(ctx context.Context, from, text string) string {
	key := normalizeKey(from)

	ctx, cancel := context.WithTimeout(ctx, s.turnTimeout)
	defer cancel()

	session, found, err := s.sessions.Get(ctx, key)
	if err != nil {
		return s.degrade(ctx, key, "session read failed", err)
	}

	// Lazy creation: the first message only opens the conversation, its
	// text is not an answer to any prompt.
	if !found {
		if _, err := s.sessions.Put(ctx, key, dialog.Patch{}); err != nil {
			return s.degrade(ctx, key, "session create failed", err)
		}
		s.logger.Info("intake", "conversation opened", map[string]interface{}{"key": key})
		return s.machine.Entry()
	}

	out, err := s.machine.Turn(ctx, session, text)
	if err != nil {
		return s.degrade(ctx, key, "turn dispatch failed", err)
	}

	// The single write of the turn. It must land before the reply goes
	// out, so a crash after the reply cannot lose state.
	if _, err := s.sessions.Put(ctx, key, out.Patch); err != nil {
		return s.degrade(ctx, key, "session write failed", err)
	}

	if out.Completed != nil {
		if err := s.publisher.PublishIntakeCompleted(out.Completed); err != nil {
			// The session is already in the done state; the reply still
			// stands even if downstream hand-off has to be retried later.
			s.logger.Error("intake", "intake-completed publish failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		} else {
			s.logger.Info("intake", "intake completed", map[string]interface{}{"key": key})
		}
	}

	return out.Reply
}

func (s *intakeService) degrade(ctx context.Context, key, msg string, err error) string {
	s.logger.Error("intake", msg, map[string]interface{}{
		"key":   key,
		"error": err.Error(),
	})
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return dialog.ReplyBusy
	}
	return dialog.ReplyUnavailable
}

// normalizeKey strips the junk messaging gateways wrap around phone numbers
// so one party always maps to one conversation key.
func normalizeKey(from string) string {
	k := strings.TrimSpace(from)
	k = strings.TrimPrefix(k, "whatsapp:")
	var b strings.Builder
	for _, r := range k {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return k
	}
	return b.String()
}
