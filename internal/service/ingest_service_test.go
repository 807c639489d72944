package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag/retriever"
	"rag-chat-be/pkg/storage"
)

type failingLLM struct{}

func (failingLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("model unavailable")
}

func (failingLLM) Generate(ctx context.Context, p string, options ...llm.Option) (string, error) {
	return "", errors.New("model unavailable")
}

func documentRequest(name string) dto.ChatMessageRequest {
	return dto.ChatMessageRequest{
		UserId:      "user-1",
		RequestId:   "req-1",
		RequestTime: "2026-09-01 10:00:00",
		Type:        constant.TurnTypeDocument,
		Body:        name,
	}
}

func TestIngestService_PagesKeepTheirOrdinal(t *testing.T) {
	ret := &fakeRetriever{}
	svc := NewIngestService(nil, ret, &fakeLLM{answer: "summary"}, nopLogger{})

	pages := []string{"page one text", "page two text", "page three text"}
	chunks, err := svc.ingestPages(context.Background(), retriever.Scope{UserID: "user-1"}, "report.pdf", pages)
	require.NoError(t, err)

	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, "report.pdf", c.Name)
		assert.Equal(t, i+1, c.Ordinal)
	}
	assert.Len(t, ret.indexed, 3)
}

func TestIngestService_LongPageSplitsButKeepsPageOrdinal(t *testing.T) {
	ret := &fakeRetriever{}
	svc := NewIngestService(nil, ret, &fakeLLM{answer: "summary"}, nopLogger{})

	long := strings.Repeat("sentence about the topic. ", 200)
	chunks, err := svc.ingestPages(context.Background(), retriever.Scope{UserID: "user-1"}, "report.pdf",
		[]string{long, "short second page"})
	require.NoError(t, err)

	require.Greater(t, len(chunks), 2)
	// Everything from page one carries ordinal 1, the second page ordinal 2.
	last := chunks[len(chunks)-1]
	assert.Equal(t, 2, last.Ordinal)
	for _, c := range chunks[:len(chunks)-1] {
		assert.Equal(t, 1, c.Ordinal)
	}
}

func TestIngestService_PlainTextCountsChunks(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("plain text line of reasonable length. ", 120)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(long), 0o644))

	ret := &fakeRetriever{}
	svc := NewIngestService(storage.NewLocalStore(dir), ret, &fakeLLM{answer: "summary"}, nopLogger{})

	msg, err := svc.Ingest(context.Background(), documentRequest("notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "summary", msg)

	require.Greater(t, len(ret.indexed), 1)
	for i, c := range ret.indexed {
		assert.Equal(t, i+1, c.Ordinal)
	}
}

func TestIngestService_CSVRowsBecomeChunks(t *testing.T) {
	dir := t.TempDir()
	csv := "name,city\nalice,seoul\nbob,busan\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "people.csv"), []byte(csv), 0o644))

	ret := &fakeRetriever{}
	svc := NewIngestService(storage.NewLocalStore(dir), ret, &fakeLLM{answer: "summary"}, nopLogger{})

	_, err := svc.Ingest(context.Background(), documentRequest("people.csv"))
	require.NoError(t, err)

	require.Len(t, ret.indexed, 2)
	assert.Contains(t, ret.indexed[0].Text, "name: alice")
	assert.Equal(t, 1, ret.indexed[0].Ordinal)
	assert.Equal(t, 2, ret.indexed[1].Ordinal)
}

func TestIngestService_SummaryFailureFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("short document"), 0o644))

	svc := NewIngestService(storage.NewLocalStore(dir), &fakeRetriever{}, failingLLM{}, nopLogger{})

	msg, err := svc.Ingest(context.Background(), documentRequest("notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, constant.SummaryFallbackMessage, msg)
}

func TestIngestService_MissingDocumentErrors(t *testing.T) {
	svc := NewIngestService(storage.NewLocalStore(t.TempDir()), &fakeRetriever{}, &fakeLLM{}, nopLogger{})

	_, err := svc.Ingest(context.Background(), documentRequest("absent.txt"))
	assert.Error(t, err)
}
