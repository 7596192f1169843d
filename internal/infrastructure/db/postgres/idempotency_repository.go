package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"booklending-service/internal/domain/entities"
	"booklending-service/internal/domain/repositories"
)

type IdempotencyRepository struct {
	db *gorm.DB
}

func NewIdempotencyRepository(db *gorm.DB) repositories.IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) FindByKey(ctx context.Context, key string) (*entities.IdempotencyRecord, error) {
	var recordModel IdempotencyRecordModel
	if err := dbFrom(ctx, r.db).Where("key = ?", key).First(&recordModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &entities.IdempotencyRecord{
		Id:         recordModel.Id,
		Key:        recordModel.Key,
		Request:    recordModel.Request,
		Response:   recordModel.Response,
		StatusCode: recordModel.StatusCode,
		CreatedAt:  recordModel.CreatedAt,
	}, nil
}

func (r *IdempotencyRepository) Create(ctx context.Context, record *entities.IdempotencyRecord) (*entities.IdempotencyRecord, error) {
	recordModel := IdempotencyRecordModel{
		Id:         record.Id,
		Key:        record.Key,
		Request:    record.Request,
		Response:   record.Response,
		StatusCode: record.StatusCode,
		CreatedAt:  record.CreatedAt,
	}
	if err := dbFrom(ctx, r.db).Create(&recordModel).Error; err != nil {
		return nil, err
	}

	return record, nil
}
