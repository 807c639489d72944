package mapper

import (
	"github.com/pgvector/pgvector-go"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/model"
)

type DocumentEmbeddingMapper struct{}

func NewDocumentEmbeddingMapper() *DocumentEmbeddingMapper {
	return &DocumentEmbeddingMapper{}
}

func (m *DocumentEmbeddingMapper) ToModel(e *entity.DocumentEmbedding) *model.DocumentEmbedding {
	return &model.DocumentEmbedding{
		Id:             e.Id,
		UserId:         e.UserId,
		RequestId:      e.RequestId,
		DocName:        e.DocName,
		Ordinal:        e.Ordinal,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.Embedding),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *DocumentEmbeddingMapper) ToEntity(mo *model.DocumentEmbedding) *entity.DocumentEmbedding {
	return &entity.DocumentEmbedding{
		Id:        mo.Id,
		UserId:    mo.UserId,
		RequestId: mo.RequestId,
		DocName:   mo.DocName,
		Ordinal:   mo.Ordinal,
		Document:  mo.Document,
		Embedding: mo.EmbeddingValue.Slice(),
		CreatedAt: mo.CreatedAt,
	}
}
