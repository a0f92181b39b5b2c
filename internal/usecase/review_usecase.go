package usecase

import (
	"context"

	"garagemap/internal/domain/entity"
	"garagemap/internal/domain/repository"
	"garagemap/pkg/errors"
	"garagemap/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo   repository.ReviewRepository
	requestRepo  repository.RequestRepository
	mechanicRepo repository.MechanicRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	requestRepo repository.RequestRepository,
	mechanicRepo repository.MechanicRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:   reviewRepo,
		requestRepo:  requestRepo,
		mechanicRepo: mechanicRepo,
	}
}

type SubmitRatingInput struct {
	RequestID string
	Rating    int
	Comment   string
}

// SubmitRating attaches a one-time satisfaction rating to a completed
// request. A second submission for the same request is rejected rather than
// treated as an update.
func (uc *ReviewUseCase) SubmitRating(ctx context.Context, reviewerID string, input SubmitRatingInput) (*entity.Review, error) {
	request, err := uc.requestRepo.GetByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	if reviewerID != request.UserID {
		return nil, errors.Forbidden("only the requesting customer may rate this request", nil)
	}

	if request.Status != entity.StatusCompleted {
		return nil, errors.PreconditionFailed("request must be completed before rating")
	}

	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.Validation("rating must be an integer between 1 and 5", nil)
	}

	existing, err := uc.reviewRepo.GetByRequestID(ctx, input.RequestID)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Conflict("this request has already been rated")
	}

	mechanic, err := uc.mechanicRepo.GetByID(ctx, request.MechanicID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.ResolutionFailed("rating target", err)
		}
		return nil, err
	}

	review := &entity.Review{
		RequestID:  request.ID,
		ReviewerID: reviewerID,
		TargetID:   mechanic.ID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	// Aggregate update and the rated flag are best effort; the review itself
	// is already durable.
	if err := uc.updateMechanicRating(ctx, mechanic, input.Rating); err != nil {
		logger.Error("Failed to update rating for mechanic %s: %v", mechanic.ID, err)
	}

	request.Rated = true
	if err := uc.requestRepo.Update(ctx, request); err != nil {
		logger.Error("Failed to flag request %s as rated: %v", request.ID, err)
	}

	return review, nil
}

func (uc *ReviewUseCase) GetReviewByID(ctx context.Context, id string) (*entity.Review, error) {
	return uc.reviewRepo.GetByID(ctx, id)
}

func (uc *ReviewUseCase) ListMechanicReviews(ctx context.Context, mechanicID string, rating, page, limit int) ([]*entity.Review, int64, error) {
	filter := make(map[string]interface{})
	filter["targetId"] = mechanicID

	if rating > 0 {
		filter["rating"] = rating
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	return uc.reviewRepo.List(ctx, filter, limit, offset)
}

// updateMechanicRating folds one new rating into the workshop's running
// average.
func (uc *ReviewUseCase) updateMechanicRating(ctx context.Context, mechanic *entity.Mechanic, newRating int) error {
	totalRating := mechanic.Rating * float64(mechanic.ReviewsCount)
	mechanic.ReviewsCount++
	mechanic.Rating = (totalRating + float64(newRating)) / float64(mechanic.ReviewsCount)

	return uc.mechanicRepo.Update(ctx, mechanic)
}
