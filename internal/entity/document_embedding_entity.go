package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentEmbedding is one indexed document chunk with its vector. Scoped by
// user id (search) and by user id + request id (the ingestion that created it).
type DocumentEmbedding struct {
	Id        uuid.UUID
	UserId    string
	RequestId string
	DocName   string
	Ordinal   int
	Document  string
	Embedding []float32
	CreatedAt time.Time
}
