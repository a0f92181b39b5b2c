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

type firestoreRequestRepository struct {
	client *firestore.Client
}

func NewFirestoreRequestRepository(client *firestore.Client) repository.RequestRepository {
	return &firestoreRequestRepository{
		client: client,
	}
}

func (r *firestoreRequestRepository) Create(ctx context.Context, request *entity.Request) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	request.Version = 1

	_, err := r.client.Collection("requests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to create request", err)
	}

	return nil
}

func (r *firestoreRequestRepository) GetByID(ctx context.Context, id string) (*entity.Request, error) {
	doc, err := r.client.Collection("requests").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Request", err)
		}
		return nil, errors.Internal("Failed to get request", err)
	}

	var request entity.Request
	if err := doc.DataTo(&request); err != nil {
		return nil, errors.Internal("Failed to parse request data", err)
	}

	return &request, nil
}

func (r *firestoreRequestRepository) Update(ctx context.Context, request *entity.Request) error {
	request.UpdatedAt = time.Now()

	_, err := r.client.Collection("requests").Doc(request.ID).Set(ctx, request)
	if err != nil {
		return errors.Internal("Failed to update request", err)
	}

	return nil
}

// UpdateStatus performs the status write inside a Firestore transaction so a
// concurrent transition on the same request fails instead of losing an
// update. The caller has already validated the edge and the actor.
func (r *firestoreRequestRepository) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string, fromVersion int64) (*entity.Request, error) {
	docRef := r.client.Collection("requests").Doc(id)
	var updated entity.Request

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Request", err)
			}
			return errors.Internal("Failed to get request", err)
		}

		var request entity.Request
		if err := doc.DataTo(&request); err != nil {
			return errors.Internal("Failed to parse request data", err)
		}

		if request.Status != fromStatus || request.Version != fromVersion {
			return errors.Conflict("Request was modified concurrently, please retry")
		}

		now := time.Now()
		request.Status = toStatus
		request.Version++
		request.UpdatedAt = now

		switch toStatus {
		case entity.StatusAccepted:
			request.AcceptedAt = &now
		case entity.StatusCompleted:
			request.CompletedAt = &now
		}

		updated = request
		return tx.Set(docRef, &request)
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *firestoreRequestRepository) ListByUserID(ctx context.Context, userID, statusFilter string, limit, offset int) ([]*entity.Request, int64, error) {
	query := r.client.Collection("requests").Where("userId", "==", userID)
	return r.listRequests(ctx, query, statusFilter, limit, offset)
}

func (r *firestoreRequestRepository) ListByMechanicID(ctx context.Context, mechanicID, statusFilter string, limit, offset int) ([]*entity.Request, int64, error) {
	query := r.client.Collection("requests").Where("mechanicId", "==", mechanicID)
	return r.listRequests(ctx, query, statusFilter, limit, offset)
}

func (r *firestoreRequestRepository) listRequests(ctx context.Context, query firestore.Query, statusFilter string, limit, offset int) ([]*entity.Request, int64, error) {
	if statusFilter != "" {
		query = query.Where("status", "==", statusFilter)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count requests", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var requests []*entity.Request

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate requests", err)
		}

		var request entity.Request
		if err := doc.DataTo(&request); err != nil {
			return nil, 0, errors.Internal("Failed to parse request data", err)
		}
		requests = append(requests, &request)
	}

	return requests, total, nil
}
