package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/memory"
	"rag-chat-be/internal/repository/specification"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag/prompt"
	"rag-chat-be/pkg/rag/retriever"
	"rag-chat-be/pkg/store"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeLLM struct {
	answer  string
	prompts []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.answer, nil
}

func (f *fakeLLM) Generate(ctx context.Context, p string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, p)
	return f.answer, nil
}

type fakeRetriever struct {
	ready    bool
	volatile bool
	chunks   []store.DocumentChunk
	indexed  []store.DocumentChunk
	searches int
}

func (f *fakeRetriever) Index(ctx context.Context, scope retriever.Scope, chunks []store.DocumentChunk) error {
	f.indexed = append(f.indexed, chunks...)
	return nil
}

func (f *fakeRetriever) Search(ctx context.Context, scope retriever.Scope, query string, topK int) ([]store.DocumentChunk, error) {
	f.searches++
	return f.chunks, nil
}

func (f *fakeRetriever) Ready(ctx context.Context, scope retriever.Scope) bool {
	return f.ready
}

func (f *fakeRetriever) Volatile() bool {
	return f.volatile
}

type fakeComposer struct {
	answer  string
	queries []prompt.Query
}

func (f *fakeComposer) Answer(ctx context.Context, userID string, q prompt.Query) (string, error) {
	f.queries = append(f.queries, q)
	return f.answer, nil
}

type fakeIngestor struct {
	summary string
	calls   int
}

func (f *fakeIngestor) Ingest(ctx context.Context, req dto.ChatMessageRequest) (string, error) {
	f.calls++
	return f.summary, nil
}

type fakeRehydrator struct{ calls int }

func (f *fakeRehydrator) Rehydrate(ctx context.Context, userID string) error {
	f.calls++
	return nil
}

// memUow backs the call log with a slice; specs are not interpreted.
type memUow struct {
	logs      []*entity.CallLog
	createErr error
}

func (u *memUow) Begin(ctx context.Context) error { return nil }
func (u *memUow) Commit() error                   { return nil }
func (u *memUow) Rollback() error                 { return nil }

func (u *memUow) CallLogRepository() contract.CallLogRepository                     { return u }
func (u *memUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository { return nil }

func (u *memUow) Create(ctx context.Context, log *entity.CallLog) error {
	if u.createErr != nil {
		return u.createErr
	}
	u.logs = append(u.logs, log)
	return nil
}

func (u *memUow) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CallLog, error) {
	return u.logs, nil
}

func (u *memUow) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(u.logs)), nil
}

func (u *memUow) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return u }

type chatFixture struct {
	svc        *ChatService
	flags      *store.Flags
	llm        *fakeLLM
	retriever  *fakeRetriever
	composer   *fakeComposer
	ingestor   *fakeIngestor
	rehydrator *fakeRehydrator
	uow        *memUow
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	f := &chatFixture{
		flags:      store.NewFlags(true, true, true),
		llm:        &fakeLLM{answer: "model answer"},
		retriever:  &fakeRetriever{},
		composer:   &fakeComposer{answer: "composed answer"},
		ingestor:   &fakeIngestor{summary: "a summary"},
		rehydrator: &fakeRehydrator{},
		uow:        &memUow{},
	}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	f.svc = NewChatService(
		f.flags,
		memory.NewConversationRepository(),
		f.retriever,
		f.composer,
		f.llm,
		f.ingestor,
		f.rehydrator,
		f.uow,
		pubSub,
		nopLogger{},
	)
	return f
}

func textRequest(body string) dto.ChatMessageRequest {
	return dto.ChatMessageRequest{
		UserId:      "user-1",
		RequestId:   "req-1",
		RequestTime: "2026-09-01 10:00:00",
		Type:        constant.TurnTypeText,
		Body:        body,
	}
}

func TestChatService_ControlCommandsFlipFlagsAndConfirm(t *testing.T) {
	f := newChatFixture(t)

	res, err := f.svc.HandleMessage(context.Background(), textRequest(constant.CmdDisableReference))
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, constant.MsgReferenceDisabled, res.Msg)
	assert.False(t, f.flags.Reference())

	res, err = f.svc.HandleMessage(context.Background(), textRequest(constant.CmdEnableReference))
	require.NoError(t, err)
	assert.Equal(t, constant.MsgReferenceEnabled, res.Msg)
	assert.True(t, f.flags.Reference())

	// Confirmations are persisted like any other turn.
	assert.Len(t, f.uow.logs, 2)
	// No model call happened.
	assert.Empty(t, f.llm.prompts)
	assert.Empty(t, f.composer.queries)
}

func TestChatService_NearMissKeywordIsAQuery(t *testing.T) {
	f := newChatFixture(t)

	// Wrong case and trailing text are questions, not commands.
	for _, body := range []string{"EnableRAG", "enableRAG ", "please enableRAG"} {
		res, err := f.svc.HandleMessage(context.Background(), textRequest(body))
		require.NoError(t, err)
		assert.Equal(t, "composed answer", res.Msg, body)
	}
	assert.True(t, f.flags.RAG())
}

func TestChatService_DisableRAGSkipsRetrieval(t *testing.T) {
	f := newChatFixture(t)
	f.retriever.ready = true
	f.retriever.chunks = []store.DocumentChunk{{Name: "d.pdf", Ordinal: 1, Text: "ctx"}}

	_, err := f.svc.HandleMessage(context.Background(), textRequest(constant.CmdDisableRAG))
	require.NoError(t, err)

	res, err := f.svc.HandleMessage(context.Background(), textRequest("what does the doc say?"))
	require.NoError(t, err)

	assert.Equal(t, 0, f.retriever.searches)
	require.Len(t, f.composer.queries, 1)
	assert.Empty(t, f.composer.queries[0].Chunks)
	assert.Equal(t, "composed answer", res.Msg)
}

func TestChatService_OversizedQueryBypassesPipeline(t *testing.T) {
	f := newChatFixture(t)
	f.retriever.ready = true

	big := strings.Repeat("q", constant.QueryCeilingChars)
	res, err := f.svc.HandleMessage(context.Background(), textRequest(big))
	require.NoError(t, err)

	assert.Equal(t, 0, f.retriever.searches)
	assert.Equal(t, 0, f.rehydrator.calls)
	assert.Empty(t, f.composer.queries)
	require.Len(t, f.llm.prompts, 1)
	assert.Equal(t, prompt.BareWrap(big), f.llm.prompts[0])
	assert.Equal(t, "model answer", res.Msg)
}

func TestChatService_ColdBufferTriggersRehydration(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.svc.HandleMessage(context.Background(), textRequest("hello"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.rehydrator.calls)

	// Buffer is warm now, no second rebuild.
	_, err = f.svc.HandleMessage(context.Background(), textRequest("again"))
	require.NoError(t, err)
	assert.Equal(t, 1, f.rehydrator.calls)
}

func TestChatService_ReferenceTrailerAppended(t *testing.T) {
	f := newChatFixture(t)
	f.retriever.ready = true
	f.retriever.chunks = []store.DocumentChunk{
		{Name: "a.pdf", Ordinal: 1, Text: "one"},
		{Name: "a.pdf", Ordinal: 2, Text: "two"},
	}

	res, err := f.svc.HandleMessage(context.Background(), textRequest("where is this from?"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Msg, "composed answer"))
	assert.Contains(t, res.Msg, "1page in a.pdf")
	assert.Contains(t, res.Msg, "2page in a.pdf")
	assert.Less(t, strings.Index(res.Msg, "1page in a.pdf"), strings.Index(res.Msg, "2page in a.pdf"))
}

func TestChatService_ModeOffUsesContextQA(t *testing.T) {
	f := newChatFixture(t)
	f.flags.SetConversationMode(false)
	f.flags.SetReference(false)
	f.retriever.ready = true
	f.retriever.chunks = []store.DocumentChunk{{Name: "d.pdf", Ordinal: 1, Text: "the context body"}}

	res, err := f.svc.HandleMessage(context.Background(), textRequest("question?"))
	require.NoError(t, err)

	assert.Empty(t, f.composer.queries)
	require.Len(t, f.llm.prompts, 1)
	assert.Contains(t, f.llm.prompts[0], "the context body")
	assert.Equal(t, "model answer", res.Msg)
}

func TestChatService_DocumentTurnRoutesToIngestor(t *testing.T) {
	f := newChatFixture(t)

	req := textRequest("report.pdf")
	req.Type = constant.TurnTypeDocument

	res, err := f.svc.HandleMessage(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, f.ingestor.calls)
	assert.Equal(t, "a summary", res.Msg)
	require.Len(t, f.uow.logs, 1)
	assert.Equal(t, constant.TurnTypeDocument, f.uow.logs[0].Type)
}

func TestChatService_LogWriteFailureFailsTheRequest(t *testing.T) {
	f := newChatFixture(t)
	f.uow.createErr = errors.New("connection refused")

	res, err := f.svc.HandleMessage(context.Background(), textRequest("hello"))
	require.Error(t, err)
	assert.Zero(t, res.StatusCode)
	assert.Empty(t, res.Msg)
}

func TestChatService_ColdVolatileIndexSendsRawQuery(t *testing.T) {
	f := newChatFixture(t)
	f.retriever.volatile = true
	f.retriever.ready = false

	res, err := f.svc.HandleMessage(context.Background(), textRequest("what do you know?"))
	require.NoError(t, err)

	// Raw query, no wrapper, no history, no composer, no rehydration.
	require.Len(t, f.llm.prompts, 1)
	assert.Equal(t, "what do you know?", f.llm.prompts[0])
	assert.Empty(t, f.composer.queries)
	assert.Equal(t, 0, f.rehydrator.calls)
	assert.Equal(t, 0, f.retriever.searches)
	assert.Equal(t, "model answer", res.Msg)

	// The turn is still persisted.
	require.Len(t, f.uow.logs, 1)
}

func TestChatService_WarmVolatileIndexUsesNormalDispatch(t *testing.T) {
	f := newChatFixture(t)
	f.retriever.volatile = true
	f.retriever.ready = true
	f.retriever.chunks = []store.DocumentChunk{{Name: "d.pdf", Ordinal: 1, Text: "ctx"}}

	res, err := f.svc.HandleMessage(context.Background(), textRequest("grounded question"))
	require.NoError(t, err)

	assert.Equal(t, 1, f.retriever.searches)
	require.Len(t, f.composer.queries, 1)
	assert.True(t, strings.HasPrefix(res.Msg, "composed answer"))
}

func TestChatService_TurnIsPersistedWithAnswer(t *testing.T) {
	f := newChatFixture(t)

	res, err := f.svc.HandleMessage(context.Background(), textRequest("hello"))
	require.NoError(t, err)

	require.Len(t, f.uow.logs, 1)
	row := f.uow.logs[0]
	assert.Equal(t, "user-1", row.UserId)
	assert.Equal(t, "hello", row.Body)
	assert.Equal(t, res.Msg, row.Msg)
	assert.Equal(t, "2026-09-01 10:00:00", row.RequestTime)
}
