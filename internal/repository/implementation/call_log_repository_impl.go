package implementation

import (
	"context"

	"gorm.io/gorm"

	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/mapper"
	"rag-chat-be/internal/model"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/specification"
)

type CallLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CallLogMapper
}

func NewCallLogRepository(db *gorm.DB) contract.CallLogRepository {
	return &CallLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewCallLogMapper(),
	}
}

func (r *CallLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CallLogRepositoryImpl) Create(ctx context.Context, log *entity.CallLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *CallLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CallLog, error) {
	var models []*model.CallLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.CallLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *CallLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CallLog{}).Count(&count).Error
	return count, err
}
