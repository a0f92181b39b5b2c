package usecase

import (
	"context"
	"sort"
	"strings"

	"garagemap/internal/domain/entity"
	"garagemap/internal/domain/repository"
	"garagemap/pkg/errors"
	"garagemap/pkg/geo"
	"garagemap/pkg/logger"
)

type MechanicUseCase struct {
	mechanicRepo repository.MechanicRepository
	userRepo     repository.UserRepository
}

func NewMechanicUseCase(
	mechanicRepo repository.MechanicRepository,
	userRepo repository.UserRepository,
) *MechanicUseCase {
	return &MechanicUseCase{
		mechanicRepo: mechanicRepo,
		userRepo:     userRepo,
	}
}

type ListMechanicsInput struct {
	Service  string
	City     string
	Search   string
	OpenOnly bool

	// When HasLocation is set, results carry a distance and sort nearest
	// first instead of by rating.
	HasLocation bool
	Latitude    float64
	Longitude   float64
}

type MechanicWithDistance struct {
	*entity.Mechanic
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// ListMechanics returns directory entries matching the filters. Service
// membership and text search are applied in memory since the document store
// only filters on equality.
func (uc *MechanicUseCase) ListMechanics(ctx context.Context, input ListMechanicsInput, limit, offset int) ([]*MechanicWithDistance, int64, error) {
	filter := make(map[string]interface{})
	if input.City != "" {
		filter["city"] = input.City
	}
	if input.OpenOnly {
		filter["isOpen"] = true
	}

	mechanics, _, err := uc.mechanicRepo.List(ctx, filter, 0, 0)
	if err != nil {
		return nil, 0, err
	}

	search := strings.ToLower(strings.TrimSpace(input.Search))

	var results []*MechanicWithDistance
	for _, mechanic := range mechanics {
		if input.Service != "" && !mechanic.OffersService(input.Service) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(mechanic.Name), search) &&
			!strings.Contains(strings.ToLower(mechanic.WorkshopName), search) {
			continue
		}

		item := &MechanicWithDistance{Mechanic: mechanic}
		if input.HasLocation {
			d := geo.HaversineKm(input.Latitude, input.Longitude, mechanic.Latitude, mechanic.Longitude)
			item.DistanceKm = &d
		}
		results = append(results, item)
	}

	if input.HasLocation {
		sort.SliceStable(results, func(i, j int) bool {
			return *results[i].DistanceKm < *results[j].DistanceKm
		})
	}

	total := int64(len(results))

	if offset > len(results) {
		offset = len(results)
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}

	return results, total, nil
}

func (uc *MechanicUseCase) GetMechanic(ctx context.Context, id string) (*entity.Mechanic, error) {
	return uc.mechanicRepo.GetByID(ctx, id)
}

// GetOwnProfile returns the workshop profile owned by the acting account.
func (uc *MechanicUseCase) GetOwnProfile(ctx context.Context, userID string) (*entity.Mechanic, error) {
	return uc.mechanicRepo.GetByUserID(ctx, userID)
}

type MechanicProfileInput struct {
	Name         string
	WorkshopName string
	Phone        string
	Email        string
	Description  string
	Address      string
	City         string
	Latitude     float64
	Longitude    float64
	Services     []string
	Photo        string
	IsOpen       bool
	Availability string
}

func (uc *MechanicUseCase) CreateProfile(ctx context.Context, userID string, input MechanicProfileInput) (*entity.Mechanic, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing, err := uc.mechanicRepo.GetByUserID(ctx, userID); err == nil && existing != nil {
		return nil, errors.Conflict("a mechanic profile already exists for this account")
	} else if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if len(input.Services) == 0 {
		return nil, errors.Validation("at least one service must be offered", nil)
	}

	availability := input.Availability
	if availability == "" {
		availability = entity.AvailabilityAvailable
	}

	mechanic := &entity.Mechanic{
		UserID:       userID,
		Name:         input.Name,
		WorkshopName: input.WorkshopName,
		Phone:        input.Phone,
		Email:        input.Email,
		Description:  input.Description,
		Address:      input.Address,
		City:         input.City,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Services:     input.Services,
		Photo:        input.Photo,
		IsOpen:       input.IsOpen,
		Availability: availability,
	}

	if err := uc.mechanicRepo.Create(ctx, mechanic); err != nil {
		return nil, err
	}

	// Creating a workshop makes the account a mechanic
	if user.Role != entity.RoleMechanic {
		user.Role = entity.RoleMechanic
		if err := uc.userRepo.Update(ctx, user); err != nil {
			logger.Error("Failed to update role for user %s: %v", userID, err)
		}
	}

	return mechanic, nil
}

func (uc *MechanicUseCase) UpdateProfile(ctx context.Context, userID, mechanicID string, input MechanicProfileInput) (*entity.Mechanic, error) {
	mechanic, err := uc.mechanicRepo.GetByID(ctx, mechanicID)
	if err != nil {
		return nil, err
	}

	if mechanic.UserID != userID {
		return nil, errors.Forbidden("you do not own this mechanic profile", nil)
	}

	if len(input.Services) == 0 {
		return nil, errors.Validation("at least one service must be offered", nil)
	}

	mechanic.Name = input.Name
	mechanic.WorkshopName = input.WorkshopName
	mechanic.Phone = input.Phone
	mechanic.Email = input.Email
	mechanic.Description = input.Description
	mechanic.Address = input.Address
	mechanic.City = input.City
	mechanic.Latitude = input.Latitude
	mechanic.Longitude = input.Longitude
	mechanic.Services = input.Services
	mechanic.Photo = input.Photo
	mechanic.IsOpen = input.IsOpen
	if input.Availability != "" {
		mechanic.Availability = input.Availability
	}

	if err := uc.mechanicRepo.Update(ctx, mechanic); err != nil {
		return nil, err
	}

	return mechanic, nil
}
