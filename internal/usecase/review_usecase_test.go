package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garagemap/internal/domain/entity"
	"garagemap/pkg/errors"
)

type reviewEnv struct {
	*requestEnv
	uc      *ReviewUseCase
	reviews *fakeReviewRepo
}

func newReviewEnv(t *testing.T) *reviewEnv {
	t.Helper()

	base := newRequestEnv(t)
	reviews := newFakeReviewRepo()

	return &reviewEnv{
		requestEnv: base,
		uc:         NewReviewUseCase(reviews, base.requests, base.mechanics),
		reviews:    reviews,
	}
}

func (e *reviewEnv) completedRequest(t *testing.T) *entity.Request {
	t.Helper()
	ctx := context.Background()

	request := e.createRequest(t, "")
	_, err := e.requestEnv.uc.Transition(ctx, request.ID, e.mechanicUserID, entity.RoleMechanic, entity.StatusAccepted)
	require.NoError(t, err)
	completed, err := e.requestEnv.uc.Transition(ctx, request.ID, e.mechanicUserID, entity.RoleMechanic, entity.StatusCompleted)
	require.NoError(t, err)
	return completed
}

func TestSubmitRating(t *testing.T) {
	env := newReviewEnv(t)
	ctx := context.Background()
	request := env.completedRequest(t)

	review, err := env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{
		RequestID: request.ID,
		Rating:    4,
		Comment:   "Quick and fair",
	})
	require.NoError(t, err)
	assert.Equal(t, request.ID, review.RequestID)
	assert.Equal(t, env.customerID, review.ReviewerID)
	assert.Equal(t, env.mechanicID, review.TargetID)
	assert.Equal(t, 4, review.Rating)

	mechanic, err := env.mechanics.GetByID(ctx, env.mechanicID)
	require.NoError(t, err)
	assert.Equal(t, 1, mechanic.ReviewsCount)
	assert.InDelta(t, 4.0, mechanic.Rating, 1e-9)

	rated, err := env.requests.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.True(t, rated.Rated)
}

func TestSubmitRatingRunningAverage(t *testing.T) {
	env := newReviewEnv(t)
	ctx := context.Background()

	first := env.completedRequest(t)
	second := env.completedRequest(t)

	_, err := env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: first.ID, Rating: 5})
	require.NoError(t, err)
	_, err = env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: second.ID, Rating: 4})
	require.NoError(t, err)

	mechanic, err := env.mechanics.GetByID(ctx, env.mechanicID)
	require.NoError(t, err)
	assert.Equal(t, 2, mechanic.ReviewsCount)
	assert.InDelta(t, 4.5, mechanic.Rating, 1e-9)
}

func TestSubmitRatingOnlyWhenCompleted(t *testing.T) {
	env := newReviewEnv(t)
	ctx := context.Background()

	pending := env.createRequest(t, "")
	_, err := env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: pending.ID, Rating: 5})
	assert.True(t, errors.Is(err, "PRECONDITION_FAILED"), "pending: %v", err)

	accepted := env.createRequest(t, "")
	_, err = env.requestEnv.uc.Transition(ctx, accepted.ID, env.mechanicUserID, entity.RoleMechanic, entity.StatusAccepted)
	require.NoError(t, err)
	_, err = env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: accepted.ID, Rating: 5})
	assert.True(t, errors.Is(err, "PRECONDITION_FAILED"), "accepted: %v", err)

	cancelled := env.createRequest(t, "")
	_, err = env.requestEnv.uc.Transition(ctx, cancelled.ID, env.mechanicUserID, entity.RoleMechanic, entity.StatusCancelled)
	require.NoError(t, err)
	_, err = env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: cancelled.ID, Rating: 5})
	assert.True(t, errors.Is(err, "PRECONDITION_FAILED"), "cancelled: %v", err)
}

func TestSubmitRatingReviewerMustBeCustomer(t *testing.T) {
	env := newReviewEnv(t)
	ctx := context.Background()
	request := env.completedRequest(t)

	_, err := env.uc.SubmitRating(ctx, env.mechanicUserID, SubmitRatingInput{RequestID: request.ID, Rating: 5})
	assert.True(t, errors.Is(err, "FORBIDDEN"), "mechanic reviewer: %v", err)

	_, err = env.uc.SubmitRating(ctx, "stranger", SubmitRatingInput{RequestID: request.ID, Rating: 5})
	assert.True(t, errors.Is(err, "FORBIDDEN"), "stranger reviewer: %v", err)
}

func TestSubmitRatingOutOfRange(t *testing.T) {
	env := newReviewEnv(t)
	ctx := context.Background()
	request := env.completedRequest(t)

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: request.ID, Rating: rating})
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "rating %d: %v", rating, err)
	}
}

func TestSubmitRatingDuplicate(t *testing.T) {
	env := newReviewEnv(t)
	ctx := context.Background()
	request := env.completedRequest(t)

	_, err := env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: request.ID, Rating: 5})
	require.NoError(t, err)

	_, err = env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: request.ID, Rating: 3})
	assert.True(t, errors.Is(err, "CONFLICT"), "got %v", err)

	// the aggregate must not move on the rejected attempt
	mechanic, err := env.mechanics.GetByID(ctx, env.mechanicID)
	require.NoError(t, err)
	assert.Equal(t, 1, mechanic.ReviewsCount)
	assert.InDelta(t, 5.0, mechanic.Rating, 1e-9)
}

func TestSubmitRatingUnresolvableTarget(t *testing.T) {
	env := newReviewEnv(t)
	ctx := context.Background()
	request := env.completedRequest(t)

	// workshop profile vanished between completion and rating
	stored := env.requests.requests[request.ID]
	stored.MechanicID = "deleted-mechanic"

	_, err := env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: request.ID, Rating: 5})
	assert.True(t, errors.Is(err, "RESOLUTION_FAILED"), "got %v", err)
}

func TestListMechanicReviews(t *testing.T) {
	env := newReviewEnv(t)
	ctx := context.Background()

	first := env.completedRequest(t)
	second := env.completedRequest(t)

	_, err := env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: first.ID, Rating: 5})
	require.NoError(t, err)
	_, err = env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: second.ID, Rating: 2})
	require.NoError(t, err)

	all, total, err := env.uc.ListMechanicReviews(ctx, env.mechanicID, 0, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	fives, total, err := env.uc.ListMechanicReviews(ctx, env.mechanicID, 5, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, fives, 1)
	assert.Equal(t, 5, fives[0].Rating)
}

// TestRequestLifecycleEndToEnd walks the whole flow one surface at a time:
// create, accept, a forbidden customer transition, complete, rate, and a
// rejected duplicate rating.
func TestRequestLifecycleEndToEnd(t *testing.T) {
	env := newReviewEnv(t)
	ctx := context.Background()

	request, err := env.requestEnv.uc.CreateRequest(ctx, env.customerID, CreateRequestInput{
		MechanicID:  env.mechanicID,
		ServiceType: "towing",
		Urgency:     entity.UrgencyEmergency,
		Description: "Stuck on the toll road",
		Latitude:    -6.19,
		Longitude:   106.82,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, request.Status)

	accepted, err := env.requestEnv.uc.Transition(ctx, request.ID, env.mechanicUserID, entity.RoleMechanic, entity.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, accepted.Status)

	_, err = env.requestEnv.uc.Transition(ctx, request.ID, env.customerID, entity.RoleCustomer, entity.StatusCompleted)
	assert.True(t, errors.Is(err, "FORBIDDEN"), "customer completing: %v", err)

	completed, err := env.requestEnv.uc.Transition(ctx, request.ID, env.mechanicUserID, entity.RoleMechanic, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, completed.Status)

	review, err := env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{
		RequestID: request.ID,
		Rating:    5,
		Comment:   "Great service",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	_, err = env.uc.SubmitRating(ctx, env.customerID, SubmitRatingInput{RequestID: request.ID, Rating: 5})
	assert.True(t, errors.Is(err, "CONFLICT"), "duplicate rating: %v", err)
}
