package usecase

import (
	"context"

	"garagemap/internal/domain/entity"
	"garagemap/internal/domain/repository"
	"garagemap/internal/infrastructure/ratelimit"
	ws "garagemap/internal/infrastructure/websocket"
	"garagemap/pkg/errors"
	"garagemap/pkg/geo"
	"garagemap/pkg/logger"
)

// RequestUseCase owns the service-request lifecycle: who may drive which
// status edge, and what gets stamped when. All surfaces go through here so
// transition rules live in exactly one place.
type RequestUseCase struct {
	requestRepo  repository.RequestRepository
	mechanicRepo repository.MechanicRepository
	userRepo     repository.UserRepository
	wsManager    *ws.Manager
	rateLimiter  *ratelimit.RateLimiter
}

func NewRequestUseCase(
	requestRepo repository.RequestRepository,
	mechanicRepo repository.MechanicRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
) *RequestUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &RequestUseCase{
		requestRepo:  requestRepo,
		mechanicRepo: mechanicRepo,
		userRepo:     userRepo,
		wsManager:    wsManager,
		rateLimiter:  rateLimiter,
	}
}

type CreateRequestInput struct {
	MechanicID  string
	ServiceType string
	Urgency     string
	Description string
	Latitude    float64
	Longitude   float64
	Address     string
}

func (uc *RequestUseCase) CreateRequest(ctx context.Context, customerID string, input CreateRequestInput) (*entity.Request, error) {
	allowed, waitTime := uc.rateLimiter.Allow(customerID, "create_request")
	if !allowed {
		logger.Warn("CreateRequest rate limited: user %s must wait %v", customerID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before creating another request", waitTime)
	}

	customer, err := uc.userRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if input.ServiceType == "" {
		return nil, errors.Validation("service type is required", nil)
	}

	urgency := input.Urgency
	if urgency == "" {
		urgency = entity.UrgencyMedium
	}
	if !entity.ValidUrgency(urgency) {
		return nil, errors.Validation("urgency must be one of low, medium, high, emergency", nil)
	}

	mechanic, err := uc.mechanicRepo.GetByID(ctx, input.MechanicID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Validation("mechanic does not exist", err)
		}
		return nil, err
	}

	if mechanic.UserID != "" && mechanic.UserID == customerID {
		return nil, errors.Validation("you cannot create a request to your own workshop", nil)
	}

	if len(mechanic.Services) > 0 && !mechanic.OffersService(input.ServiceType) {
		return nil, errors.Validation("mechanic does not offer this service", nil)
	}

	request := &entity.Request{
		UserID:         customerID,
		MechanicID:     mechanic.ID,
		MechanicUserID: mechanic.UserID,
		UserName:       customer.Username,
		MechanicName:   mechanic.Name,
		ServiceType:    input.ServiceType,
		Status:         entity.StatusPending,
		Urgency:        urgency,
		Description:    input.Description,
		UserLatitude:   input.Latitude,
		UserLongitude:  input.Longitude,
		UserAddress:    input.Address,
	}

	// Distance is display-only; it never feeds lifecycle decisions
	if input.Latitude != 0 || input.Longitude != 0 {
		request.DistanceKm = geo.HaversineKm(input.Latitude, input.Longitude, mechanic.Latitude, mechanic.Longitude)
	}

	if err := uc.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Request %s created: user=%s mechanic=%s service=%s urgency=%s",
		request.ID, customerID, mechanic.ID, request.ServiceType, request.Urgency)

	if request.MechanicUserID != "" {
		uc.wsManager.PushEvent([]string{request.MechanicUserID}, ws.Event{Type: "request_status", Data: request})
	}

	return request, nil
}

// Transition applies one status edge. Checks run actor-first so a wrong
// caller always sees FORBIDDEN rather than a state error, which the UI
// renders differently.
func (uc *RequestUseCase) Transition(ctx context.Context, requestID, actorID, actorRole, targetStatus string) (*entity.Request, error) {
	if !entity.ValidStatus(targetStatus) {
		return nil, errors.Validation("unknown target status", nil)
	}

	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// Every edge after creation is mechanic-driven and only by the mechanic
	// the request is addressed to.
	if actorRole != entity.RoleMechanic || actorID != request.MechanicUserID {
		return nil, errors.Forbidden("only the assigned mechanic may update this request", nil)
	}

	if !entity.CanTransition(request.Status, targetStatus) {
		return nil, errors.InvalidTransition(request.Status, targetStatus)
	}

	updated, err := uc.requestRepo.UpdateStatus(ctx, requestID, request.Status, targetStatus, request.Version)
	if err != nil {
		return nil, err
	}

	logger.Info("Request %s transitioned %s -> %s by %s", requestID, request.Status, targetStatus, actorID)

	uc.wsManager.PushEvent([]string{updated.UserID}, ws.Event{Type: "request_status", Data: updated})

	return updated, nil
}

func (uc *RequestUseCase) GetRequest(ctx context.Context, userID, requestID string) (*entity.Request, error) {
	request, err := uc.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsParticipant(userID) {
		return nil, errors.Forbidden("you are not a participant of this request", nil)
	}

	return request, nil
}

func (uc *RequestUseCase) ListUserRequests(ctx context.Context, userID, status string, limit, offset int) ([]*entity.Request, int64, error) {
	if status != "" && !entity.ValidStatus(status) {
		return nil, 0, errors.BadRequest("Invalid status filter", nil)
	}
	return uc.requestRepo.ListByUserID(ctx, userID, status, limit, offset)
}

// ListMechanicRequests lists the requests addressed to the acting mechanic's
// workshop profile.
func (uc *RequestUseCase) ListMechanicRequests(ctx context.Context, actorID, status string, limit, offset int) ([]*entity.Request, int64, error) {
	if status != "" && !entity.ValidStatus(status) {
		return nil, 0, errors.BadRequest("Invalid status filter", nil)
	}

	mechanic, err := uc.mechanicRepo.GetByUserID(ctx, actorID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, 0, errors.Forbidden("no mechanic profile for this account", err)
		}
		return nil, 0, err
	}

	return uc.requestRepo.ListByMechanicID(ctx, mechanic.ID, status, limit, offset)
}
