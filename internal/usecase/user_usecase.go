package usecase

import (
	"context"

	"garagemap/internal/domain/entity"
	"garagemap/internal/domain/repository"
	"garagemap/internal/infrastructure/firebase"
	"garagemap/pkg/errors"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	authClient *firebase.FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, authClient *firebase.FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		authClient: authClient,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Username  string
	Phone     string
	Latitude  float64
	Longitude float64
	PhotoURL  string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Latitude != 0 || input.Longitude != 0 {
		user.Latitude = input.Latitude
		user.Longitude = input.Longitude
	}
	if input.PhotoURL != "" {
		user.PhotoURL = input.PhotoURL
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.Validation("password must be at least 8 characters", nil)
	}

	if err := uc.authClient.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	return nil
}

// UpdateRole switches an account between customer and mechanic. Admin is
// never assignable through this path.
func (uc *UserUseCase) UpdateRole(ctx context.Context, userID, role string) (*entity.User, error) {
	if role != entity.RoleCustomer && role != entity.RoleMechanic {
		return nil, errors.Validation("role must be customer or mechanic", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
