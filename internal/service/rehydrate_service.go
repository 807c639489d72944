package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/memory"
	"rag-chat-be/internal/repository/specification"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/store"
)

// RehydrateService rebuilds per-user conversation buffers from the call log.
// It runs on demand when a cold buffer is first touched and as a subscriber
// on the turn-logged topic so a warm buffer tracks the durable log.
type RehydrateService struct {
	conversations *memory.ConversationRepository
	uowFactory    unitofwork.RepositoryFactory
	logger        logger.ILogger
	now           func() time.Time
}

func NewRehydrateService(conversations *memory.ConversationRepository, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *RehydrateService {
	return &RehydrateService{
		conversations: conversations,
		uowFactory:    uowFactory,
		logger:        log,
		now:           time.Now,
	}
}

// Rehydrate replaces the user's buffer with the text turns logged inside the
// retention window, oldest first. Control confirmations and document turns
// never enter the buffer because only rows typed "text" qualify, and control
// rows are filtered by their known confirmation messages.
func (s *RehydrateService) Rehydrate(ctx context.Context, userID string) error {
	cutoff := s.now().Add(-time.Duration(constant.RetentionHours) * time.Hour).
		Format(constant.RequestTimeLayout)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.CallLogRepository().FindAll(ctx,
		specification.ByUserID{UserID: userID},
		specification.ByTurnType{Type: constant.TurnTypeText},
		specification.RequestTimeAfter{Cutoff: cutoff},
		specification.OrderBy{Field: "request_time"},
	)
	if err != nil {
		return err
	}

	turns := make([]store.Turn, 0, len(rows))
	for _, row := range rows {
		if isControlConfirmation(row.Msg) {
			continue
		}
		turns = append(turns, store.Turn{Question: row.Body, Answer: row.Msg})
	}

	s.conversations.Delete(userID)
	s.conversations.Replay(userID, turns)

	s.logger.Debug("service.rehydrate", "buffer rebuilt", map[string]interface{}{
		"user_id": userID,
		"turns":   len(turns),
	})
	return nil
}

func isControlConfirmation(msg string) bool {
	switch msg {
	case constant.MsgReferenceEnabled, constant.MsgReferenceDisabled,
		constant.MsgConversationModeEnabled, constant.MsgConversationModeDisabled,
		constant.MsgRAGEnabled, constant.MsgRAGDisabled:
		return true
	}
	return false
}

// Run consumes turn-logged events until the context is canceled. Failures on
// a single event are logged and acked; the next turn triggers another
// rebuild anyway.
func (s *RehydrateService) Run(ctx context.Context, subscriber message.Subscriber) error {
	messages, err := subscriber.Subscribe(ctx, TopicTurnLogged)
	if err != nil {
		return err
	}

	s.logger.Info("service.rehydrate", "subscribed to turn-logged events", nil)

	for msg := range messages {
		var event dto.TurnLoggedMessage
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			s.logger.Error("service.rehydrate", "malformed event payload", map[string]interface{}{
				"error": err.Error(),
			})
			msg.Ack()
			continue
		}

		if err := s.Rehydrate(ctx, event.UserId); err != nil {
			s.logger.Error("service.rehydrate", "rebuild failed", map[string]interface{}{
				"user_id": event.UserId,
				"error":   err.Error(),
			})
		}
		msg.Ack()
	}
	return nil
}
