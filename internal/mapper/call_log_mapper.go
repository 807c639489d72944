package mapper

import (
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/model"
)

type CallLogMapper struct{}

func NewCallLogMapper() *CallLogMapper {
	return &CallLogMapper{}
}

func (m *CallLogMapper) ToModel(e *entity.CallLog) *model.CallLog {
	return &model.CallLog{
		Id:          e.Id,
		UserId:      e.UserId,
		RequestId:   e.RequestId,
		RequestTime: e.RequestTime,
		Type:        e.Type,
		Body:        e.Body,
		Msg:         e.Msg,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *CallLogMapper) ToEntity(mo *model.CallLog) *entity.CallLog {
	return &entity.CallLog{
		Id:          mo.Id,
		UserId:      mo.UserId,
		RequestId:   mo.RequestId,
		RequestTime: mo.RequestTime,
		Type:        mo.Type,
		Body:        mo.Body,
		Msg:         mo.Msg,
		CreatedAt:   mo.CreatedAt,
	}
}
