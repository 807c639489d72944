package retriever

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/store"
)

// PgvectorRetriever persists embeddings in Postgres and searches them with the
// pgvector cosine operator. It survives restarts, which makes it the warm-path
// sibling of MemoryRetriever.
type PgvectorRetriever struct {
	embeddingProvider embedding.EmbeddingProvider
	uowFactory        unitofwork.RepositoryFactory
	threshold         float64
}

func NewPgvectorRetriever(embeddingProvider embedding.EmbeddingProvider, uowFactory unitofwork.RepositoryFactory) *PgvectorRetriever {
	return &PgvectorRetriever{
		embeddingProvider: embeddingProvider,
		uowFactory:        uowFactory,
		threshold:         0.0,
	}
}

// Index embeds the chunks and bulk-inserts them in one transaction.
func (r *PgvectorRetriever) Index(ctx context.Context, scope Scope, chunks []store.DocumentChunk) error {
	embeddings := make([]*entity.DocumentEmbedding, 0, len(chunks))
	now := time.Now()
	for _, chunk := range chunks {
		res, err := r.embeddingProvider.Generate(chunk.Text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return fmt.Errorf("embedding generation failed for %s#%d: %w", chunk.Name, chunk.Ordinal, err)
		}
		embeddings = append(embeddings, &entity.DocumentEmbedding{
			Id:        uuid.New(),
			UserId:    scope.UserID,
			RequestId: scope.RequestID,
			DocName:   chunk.Name,
			Ordinal:   chunk.Ordinal,
			Document:  chunk.Text,
			Embedding: embedding.NormalizeVector(res.Embedding.Values),
			CreatedAt: now,
		})
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
		uow.Rollback()
		return fmt.Errorf("bulk insert of embeddings failed: %w", err)
	}
	return uow.Commit()
}

// Search embeds the query and ranks the user's stored chunks in the database.
func (r *PgvectorRetriever) Search(ctx context.Context, scope Scope, query string, topK int) ([]store.DocumentChunk, error) {
	res, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scoredResults, err := uow.DocumentEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		embedding.NormalizeVector(res.Embedding.Values),
		topK,
		scope.UserID,
		r.threshold,
	)
	if err != nil {
		return nil, err
	}

	chunks := make([]store.DocumentChunk, 0, len(scoredResults))
	for _, scored := range scoredResults {
		chunks = append(chunks, store.DocumentChunk{
			Name:    scored.Embedding.DocName,
			Ordinal: scored.Embedding.Ordinal,
			Text:    scored.Embedding.Document,
			Score:   float32(scored.Similarity),
		})
	}
	return chunks, nil
}

// Ready reports whether the user has embeddings persisted at all.
func (r *PgvectorRetriever) Ready(ctx context.Context, scope Scope) bool {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.DocumentEmbeddingRepository().CountByUser(ctx, scope.UserID)
	if err != nil {
		return false
	}
	return count > 0
}

// Volatile is false: embeddings survive restarts in Postgres.
func (r *PgvectorRetriever) Volatile() bool {
	return false
}
