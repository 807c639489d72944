package entity

import (
	"time"

	"github.com/google/uuid"
)

// CallLog is one persisted request/response exchange. Rows are append-only:
// they serve as the audit trail and as the rehydration source for the
// per-user conversation buffer.
type CallLog struct {
	Id          uuid.UUID
	UserId      string
	RequestId   string
	RequestTime string
	Type        string
	Body        string
	Msg         string
	CreatedAt   time.Time
}
