package usecase

import (
	"context"

	"garagemap/internal/domain/entity"
	"garagemap/internal/domain/repository"
	"garagemap/internal/infrastructure/firebase"
	"garagemap/pkg/errors"
	"garagemap/pkg/logger"
)

type AuthUseCase struct {
	userRepo   repository.UserRepository
	authClient *firebase.FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, authClient *firebase.FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		authClient: authClient,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
	Phone    string
	Role     string
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates the Firebase account and its profile document, returning
// a custom token the client exchanges for an ID token.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if role != entity.RoleCustomer && role != entity.RoleMechanic {
		return nil, errors.Validation("role must be customer or mechanic", nil)
	}

	if existing, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, errors.Conflict("an account with this email already exists")
	} else if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.Internal("Failed to create auth account", err)
	}

	user := &entity.User{
		ID:       uid,
		Email:    input.Email,
		Username: input.Username,
		Phone:    input.Phone,
		Role:     role,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := uc.authClient.GenerateToken(ctx, uid)
	if err != nil {
		logger.Error("Failed to mint custom token for %s: %v", uid, err)
		return &AuthResult{User: user}, nil
	}

	return &AuthResult{User: user, Token: token}, nil
}

// SyncProfile ensures a profile document exists for an already-authenticated
// uid. Accounts created directly through the Firebase client SDK land here
// on their first API call.
func (uc *AuthUseCase) SyncProfile(ctx context.Context, uid, email, displayName string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	user = &entity.User{
		ID:       uid,
		Email:    email,
		Username: displayName,
		Role:     entity.RoleCustomer,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Profile synced for uid %s", uid)
	return user, nil
}
