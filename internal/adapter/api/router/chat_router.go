package router

import (
	"garagemap/internal/adapter/api/handler"
	"garagemap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	authenticated := e.Group("")
	authenticated.Use(authMiddleware.Authenticate)

	// Chats hang off the request they belong to
	authenticated.GET("/v1/requests/:id/chat", chatHandler.OpenChat)
	authenticated.POST("/v1/requests/:id/chat/messages", chatHandler.SendMessage)
	authenticated.GET("/v1/requests/:id/chat/messages", chatHandler.ListMessages)
	authenticated.POST("/v1/requests/:id/chat/read", chatHandler.MarkChatAsRead)

	authenticated.GET("/v1/chats", chatHandler.ListChats)
}
