package handler

import (
	"garagemap/internal/usecase"
)

var (
	authHandler     *AuthHandler
	userHandler     *UserHandler
	mechanicHandler *MechanicHandler
	requestHandler  *RequestHandler
	chatHandler     *ChatHandler
	reviewHandler   *ReviewHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	mechanicUseCase *usecase.MechanicUseCase,
	requestUseCase *usecase.RequestUseCase,
	chatUseCase *usecase.ChatUseCase,
	reviewUseCase *usecase.ReviewUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	mechanicHandler = NewMechanicHandler(mechanicUseCase)
	requestHandler = NewRequestHandler(requestUseCase, userUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetMechanicHandler() *MechanicHandler {
	return mechanicHandler
}

func GetRequestHandler() *RequestHandler {
	return requestHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}
