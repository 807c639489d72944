package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type DocumentEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         string          `gorm:"type:varchar(100);not null;index"`
	RequestId      string          `gorm:"type:varchar(100);not null;index"`
	DocName        string          `gorm:"type:varchar(255);not null"`
	Ordinal        int             `gorm:"default:0"` // page number or csv row, 1-based
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (DocumentEmbedding) TableName() string {
	return "document_embeddings"
}
