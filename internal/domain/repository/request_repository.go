package repository

import (
	"context"

	"garagemap/internal/domain/entity"
)

type RequestRepository interface {
	Create(ctx context.Context, request *entity.Request) error
	GetByID(ctx context.Context, id string) (*entity.Request, error)
	Update(ctx context.Context, request *entity.Request) error

	// UpdateStatus writes toStatus atomically, checking inside a store
	// transaction that the document still holds fromStatus at fromVersion.
	// A concurrent writer losing the race gets a CONFLICT error.
	UpdateStatus(ctx context.Context, id, fromStatus, toStatus string, fromVersion int64) (*entity.Request, error)

	ListByUserID(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Request, int64, error)
	ListByMechanicID(ctx context.Context, mechanicID, status string, limit, offset int) ([]*entity.Request, int64, error)
}
