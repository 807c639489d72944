package service

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/internal/repository/memory"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/lang"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag/history"
	"rag-chat-be/pkg/rag/prompt"
	"rag-chat-be/pkg/rag/retriever"
	"rag-chat-be/pkg/store"
)

// TopicTurnLogged carries a TurnLoggedMessage after every persisted text turn.
const TopicTurnLogged = "chat.turn.logged"

// Ingestor handles the document branch of a chat message and returns the
// summary text to reply with.
type Ingestor interface {
	Ingest(ctx context.Context, req dto.ChatMessageRequest) (string, error)
}

// Rehydrator rebuilds a user's conversation buffer from the call log.
type Rehydrator interface {
	Rehydrate(ctx context.Context, userID string) error
}

// ChatService is the request orchestrator: control commands, document
// ingestion, retrieval, prompt composition, and the call log all meet here.
type ChatService struct {
	flags         *store.Flags
	conversations *memory.ConversationRepository
	retriever     retriever.Retriever
	composer      prompt.Composer
	llmProvider   llm.LLMProvider
	ingestor      Ingestor
	rehydrator    Rehydrator
	uowFactory    unitofwork.RepositoryFactory
	publisher     message.Publisher
	logger        logger.ILogger
}

func NewChatService(
	flags *store.Flags,
	conversations *memory.ConversationRepository,
	ret retriever.Retriever,
	composer prompt.Composer,
	llmProvider llm.LLMProvider,
	ingestor Ingestor,
	rehydrator Rehydrator,
	uowFactory unitofwork.RepositoryFactory,
	publisher message.Publisher,
	log logger.ILogger,
) *ChatService {
	return &ChatService{
		flags:         flags,
		conversations: conversations,
		retriever:     ret,
		composer:      composer,
		llmProvider:   llmProvider,
		ingestor:      ingestor,
		rehydrator:    rehydrator,
		uowFactory:    uowFactory,
		publisher:     publisher,
		logger:        log,
	}
}

// HandleMessage processes one chat event end to end. Every outcome, control
// confirmations included, is persisted to the call log before it is returned.
func (s *ChatService) HandleMessage(ctx context.Context, req dto.ChatMessageRequest) (dto.ChatMessageResponse, error) {
	var msg string
	var err error

	switch {
	case req.Type == constant.TurnTypeDocument:
		msg, err = s.ingestor.Ingest(ctx, req)
	default:
		if confirmation, ok := s.applyControlCommand(req.Body); ok {
			msg = confirmation
		} else {
			msg, err = s.answer(ctx, req)
		}
	}
	if err != nil {
		return dto.ChatMessageResponse{}, err
	}

	// The turn only counts once it is durable; an unlogged answer is a failed
	// request.
	if err := s.logCall(ctx, req, msg); err != nil {
		s.logger.Error("service.chat", "call log write failed", map[string]interface{}{
			"user_id":    req.UserId,
			"request_id": req.RequestId,
			"error":      err.Error(),
		})
		return dto.ChatMessageResponse{}, fmt.Errorf("call log write failed: %w", err)
	}

	return dto.ChatMessageResponse{StatusCode: 200, Msg: msg}, nil
}

// applyControlCommand flips the matching flag for an exact keyword match and
// returns its confirmation text.
func (s *ChatService) applyControlCommand(body string) (string, bool) {
	switch body {
	case constant.CmdEnableReference:
		s.flags.SetReference(true)
		return constant.MsgReferenceEnabled, true
	case constant.CmdDisableReference:
		s.flags.SetReference(false)
		return constant.MsgReferenceDisabled, true
	case constant.CmdEnableConversationMode:
		s.flags.SetConversationMode(true)
		return constant.MsgConversationModeEnabled, true
	case constant.CmdDisableConversationMode:
		s.flags.SetConversationMode(false)
		return constant.MsgConversationModeDisabled, true
	case constant.CmdEnableRAG:
		s.flags.SetRAG(true)
		return constant.MsgRAGEnabled, true
	case constant.CmdDisableRAG:
		s.flags.SetRAG(false)
		return constant.MsgRAGDisabled, true
	}
	return "", false
}

func (s *ChatService) answer(ctx context.Context, req dto.ChatMessageRequest) (string, error) {
	korean := lang.ContainsHangul(req.Body)
	scope := retriever.Scope{UserID: req.UserId, RequestID: req.RequestId}

	// A volatile index with nothing rebuilt yet cannot ground anything; the
	// raw query goes straight to the model, unwrapped.
	if s.retriever.Volatile() && !s.retriever.Ready(ctx, scope) {
		return s.llmProvider.Generate(ctx, req.Body)
	}

	// Oversized queries skip retrieval and history entirely; the raw text is
	// framed and sent as-is.
	if utf8.RuneCountInString(req.Body) >= constant.QueryCeilingChars {
		return s.llmProvider.Generate(ctx, prompt.BareWrap(req.Body))
	}

	conv := s.conversations.GetOrCreate(req.UserId)
	if len(conv.Turns) == 0 {
		if err := s.rehydrator.Rehydrate(ctx, req.UserId); err != nil {
			s.logger.Warn("service.chat", "history rehydration failed", map[string]interface{}{
				"user_id": req.UserId,
				"error":   err.Error(),
			})
		}
	}

	var chunks []store.DocumentChunk
	if s.flags.RAG() && s.retriever.Ready(ctx, scope) {
		found, err := s.retriever.Search(ctx, scope, req.Body, constant.SearchTopK)
		if err != nil {
			return "", fmt.Errorf("retrieval failed: %w", err)
		}
		chunks = found
	}

	var answer string
	var err error
	if s.flags.ConversationMode() {
		answer, err = s.composer.Answer(ctx, req.UserId, prompt.Query{
			Text:    req.Body,
			History: history.Window(conv.Flatten(), constant.HistoryWindowChars),
			Chunks:  chunks,
			Korean:  korean,
		})
	} else if len(chunks) > 0 {
		answer, err = s.llmProvider.Generate(ctx, prompt.BuildContextQA(chunks, req.Body, korean))
	} else {
		answer, err = s.llmProvider.Generate(ctx, prompt.BareWrap(req.Body))
	}
	if err != nil {
		return "", fmt.Errorf("model invocation failed: %w", err)
	}

	if s.flags.Reference() && len(chunks) > 0 {
		answer += prompt.ReferenceTrailer(chunks)
	}

	s.conversations.Append(req.UserId, req.Body, answer)
	return answer, nil
}

// logCall persists the exchange and announces it so buffers elsewhere can
// catch up.
func (s *ChatService) logCall(ctx context.Context, req dto.ChatMessageRequest, msg string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	err := uow.CallLogRepository().Create(ctx, &entity.CallLog{
		Id:          uuid.New(),
		UserId:      req.UserId,
		RequestId:   req.RequestId,
		RequestTime: req.RequestTime,
		Type:        req.Type,
		Body:        req.Body,
		Msg:         msg,
	})
	if err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.TurnLoggedMessage{UserId: req.UserId})
	if err != nil {
		return err
	}
	return s.publisher.Publish(TopicTurnLogged, message.NewMessage(watermill.NewUUID(), payload))
}
