package model

import (
	"time"

	"github.com/google/uuid"
)

type CallLog struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      string    `gorm:"type:varchar(100);not null;index:idx_call_logs_user_time,priority:1"`
	RequestId   string    `gorm:"type:varchar(100);not null"`
	RequestTime string    `gorm:"type:varchar(30);not null;index:idx_call_logs_user_time,priority:2"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Body        string    `gorm:"type:text"`
	Msg         string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (CallLog) TableName() string {
	return "call_logs"
}
