package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"garagemap/internal/domain/entity"
	"garagemap/internal/domain/repository"
	"garagemap/pkg/errors"
)

type firestoreMechanicRepository struct {
	client *firestore.Client
}

func NewFirestoreMechanicRepository(client *firestore.Client) repository.MechanicRepository {
	return &firestoreMechanicRepository{
		client: client,
	}
}

func (r *firestoreMechanicRepository) Create(ctx context.Context, mechanic *entity.Mechanic) error {
	if mechanic.ID == "" {
		mechanic.ID = uuid.New().String()
	}

	now := time.Now()
	mechanic.CreatedAt = now
	mechanic.UpdatedAt = now

	_, err := r.client.Collection("mechanics").Doc(mechanic.ID).Set(ctx, mechanic)
	if err != nil {
		return errors.Internal("Failed to create mechanic profile", err)
	}

	return nil
}

func (r *firestoreMechanicRepository) GetByID(ctx context.Context, id string) (*entity.Mechanic, error) {
	doc, err := r.client.Collection("mechanics").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Mechanic", err)
		}
		return nil, errors.Internal("Failed to get mechanic", err)
	}

	var mechanic entity.Mechanic
	if err := doc.DataTo(&mechanic); err != nil {
		return nil, errors.Internal("Failed to parse mechanic data", err)
	}

	return &mechanic, nil
}

func (r *firestoreMechanicRepository) GetByUserID(ctx context.Context, userID string) (*entity.Mechanic, error) {
	iter := r.client.Collection("mechanics").Where("userId", "==", userID).Limit(1).Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Mechanic", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query mechanic by user", err)
	}

	var mechanic entity.Mechanic
	if err := doc.DataTo(&mechanic); err != nil {
		return nil, errors.Internal("Failed to parse mechanic data", err)
	}

	return &mechanic, nil
}

func (r *firestoreMechanicRepository) Update(ctx context.Context, mechanic *entity.Mechanic) error {
	mechanic.UpdatedAt = time.Now()

	_, err := r.client.Collection("mechanics").Doc(mechanic.ID).Set(ctx, mechanic)
	if err != nil {
		return errors.Internal("Failed to update mechanic profile", err)
	}

	return nil
}

func (r *firestoreMechanicRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Mechanic, int64, error) {
	query := r.client.Collection("mechanics").OrderBy("rating", firestore.Desc)

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count mechanics", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var mechanics []*entity.Mechanic

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate mechanics", err)
		}

		var mechanic entity.Mechanic
		if err := doc.DataTo(&mechanic); err != nil {
			return nil, 0, errors.Internal("Failed to parse mechanic data", err)
		}
		mechanics = append(mechanics, &mechanic)
	}

	return mechanics, total, nil
}
