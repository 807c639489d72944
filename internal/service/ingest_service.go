package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/pkg/extract"
	"rag-chat-be/pkg/lang"
	"rag-chat-be/pkg/llm"
	"rag-chat-be/pkg/rag/retriever"
	"rag-chat-be/pkg/storage"
	"rag-chat-be/pkg/store"
	"rag-chat-be/pkg/textsplit"
)

// IngestService handles document turns: it fetches the named object, splits
// it into chunks, indexes the chunks for retrieval, and replies with a short
// summary of the document head.
type IngestService struct {
	objects     storage.ObjectStore
	retriever   retriever.Retriever
	llmProvider llm.LLMProvider
	splitter    *textsplit.Splitter
	logger      logger.ILogger
}

func NewIngestService(objects storage.ObjectStore, ret retriever.Retriever, llmProvider llm.LLMProvider, log logger.ILogger) *IngestService {
	return &IngestService{
		objects:     objects,
		retriever:   ret,
		llmProvider: llmProvider,
		splitter:    textsplit.New(constant.DocumentChunkSize, constant.DocumentChunkLap),
		logger:      log,
	}
}

// Ingest processes the document named in the request body and returns the
// summary text. A summary failure is not an ingest failure: the chunks are
// already indexed, so the fallback message is returned instead of an error.
func (s *IngestService) Ingest(ctx context.Context, req dto.ChatMessageRequest) (string, error) {
	name := strings.TrimSpace(req.Body)

	obj, err := s.objects.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("document fetch failed: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", fmt.Errorf("document read failed: %w", err)
	}

	var pages []string
	switch extract.FileType(name) {
	case "pdf":
		pages, err = extract.PDFPages(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return "", err
		}
	case "csv":
		pages, err = extract.CSVRows(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
	default:
		pages = []string{string(data)}
	}

	scope := retriever.Scope{UserID: req.UserId, RequestID: req.RequestId}
	chunks, err := s.ingestPages(ctx, scope, name, pages)
	if err != nil {
		return "", err
	}

	s.logger.Info("service.ingest", "document indexed", map[string]interface{}{
		"user_id":  req.UserId,
		"document": name,
		"chunks":   len(chunks),
	})

	return s.summarize(ctx, chunks), nil
}

// ingestPages splits page texts into chunks and indexes them. Each chunk
// keeps the 1-based ordinal of the page or row it came from, which is what
// the reference trailer reports later. Plain text arrives as a single page,
// so there the ordinal counts chunks instead.
func (s *IngestService) ingestPages(ctx context.Context, scope retriever.Scope, name string, pages []string) ([]store.DocumentChunk, error) {
	var chunks []store.DocumentChunk
	singlePage := len(pages) == 1

	for pageIdx, page := range pages {
		for chunkIdx, text := range s.splitter.Split(page) {
			ordinal := pageIdx + 1
			if singlePage {
				ordinal = chunkIdx + 1
			}
			chunks = append(chunks, store.DocumentChunk{
				Name:    name,
				Ordinal: ordinal,
				Text:    text,
			})
		}
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("document %s produced no text", name)
	}

	if err := s.retriever.Index(ctx, scope, chunks); err != nil {
		return nil, fmt.Errorf("indexing failed: %w", err)
	}
	return chunks, nil
}

// summarize asks the model for a summary of the document head.
func (s *IngestService) summarize(ctx context.Context, chunks []store.DocumentChunk) string {
	limit := constant.SummaryChunkLimit
	if len(chunks) < limit {
		limit = len(chunks)
	}
	texts := make([]string, 0, limit)
	for _, c := range chunks[:limit] {
		texts = append(texts, c.Text)
	}
	head := strings.Join(texts, "\n\n")

	tmpl := constant.SummaryPromptEN
	if lang.ContainsHangul(head) {
		tmpl = constant.SummaryPromptKO
	}

	summary, err := s.llmProvider.Generate(ctx, fmt.Sprintf(tmpl, head))
	if err != nil {
		s.logger.Warn("service.ingest", "summary generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.SummaryFallbackMessage
	}
	return summary
}
