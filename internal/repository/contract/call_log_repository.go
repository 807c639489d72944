package contract

import (
	"context"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/specification"
)

type CallLogRepository interface {
	Create(ctx context.Context, log *entity.CallLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CallLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
