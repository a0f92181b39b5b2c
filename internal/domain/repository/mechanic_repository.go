package repository

import (
	"context"

	"garagemap/internal/domain/entity"
)

type MechanicRepository interface {
	Create(ctx context.Context, mechanic *entity.Mechanic) error
	GetByID(ctx context.Context, id string) (*entity.Mechanic, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Mechanic, error)
	Update(ctx context.Context, mechanic *entity.Mechanic) error
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Mechanic, int64, error)
}
