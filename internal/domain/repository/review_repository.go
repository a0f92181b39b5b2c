package repository

import (
	"context"

	"garagemap/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByRequestID(ctx context.Context, requestID string) (*entity.Review, error)
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Review, int64, error)
}
