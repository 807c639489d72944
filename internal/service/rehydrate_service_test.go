package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/memory"
)

func TestRehydrateService_RebuildsBufferFromLog(t *testing.T) {
	uow := &memUow{logs: []*entity.CallLog{
		{UserId: "user-1", Type: constant.TurnTypeText, Body: "first", Msg: "answer one", RequestTime: "2026-09-01 09:00:00"},
		{UserId: "user-1", Type: constant.TurnTypeText, Body: "second", Msg: "answer two", RequestTime: "2026-09-01 09:05:00"},
	}}
	conversations := memory.NewConversationRepository()
	svc := NewRehydrateService(conversations, uow, nopLogger{})

	require.NoError(t, svc.Rehydrate(context.Background(), "user-1"))

	turns := conversations.GetOrCreate("user-1").Turns
	require.Len(t, turns, 2)
	assert.Equal(t, "first", turns[0].Question)
	assert.Equal(t, "answer two", turns[1].Answer)
}

func TestRehydrateService_SkipsControlConfirmations(t *testing.T) {
	uow := &memUow{logs: []*entity.CallLog{
		{UserId: "user-1", Type: constant.TurnTypeText, Body: constant.CmdEnableRAG, Msg: constant.MsgRAGEnabled},
		{UserId: "user-1", Type: constant.TurnTypeText, Body: "real question", Msg: "real answer"},
	}}
	conversations := memory.NewConversationRepository()
	svc := NewRehydrateService(conversations, uow, nopLogger{})

	require.NoError(t, svc.Rehydrate(context.Background(), "user-1"))

	turns := conversations.GetOrCreate("user-1").Turns
	require.Len(t, turns, 1)
	assert.Equal(t, "real question", turns[0].Question)
}

func TestRehydrateService_ReplacesStaleBuffer(t *testing.T) {
	uow := &memUow{logs: []*entity.CallLog{
		{UserId: "user-1", Type: constant.TurnTypeText, Body: "logged", Msg: "logged answer"},
	}}
	conversations := memory.NewConversationRepository()
	conversations.Append("user-1", "stale", "stale answer")
	svc := NewRehydrateService(conversations, uow, nopLogger{})

	require.NoError(t, svc.Rehydrate(context.Background(), "user-1"))

	turns := conversations.GetOrCreate("user-1").Turns
	require.Len(t, turns, 1)
	assert.Equal(t, "logged", turns[0].Question)
}
