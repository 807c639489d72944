package contract

import (
	"context"

	"rag-chat-be/internal/entity"
)

// ScoredDocumentEmbedding pairs an embedding row with its cosine similarity
// to the query vector.
type ScoredDocumentEmbedding struct {
	Embedding  *entity.DocumentEmbedding
	Similarity float64
}

type DocumentEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.DocumentEmbedding) error
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, userId string, threshold float64) ([]*ScoredDocumentEmbedding, error)
	CountByUser(ctx context.Context, userId string) (int64, error)
}
