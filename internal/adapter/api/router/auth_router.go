package router

import (
	"garagemap/internal/adapter/api/handler"
	"garagemap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)

	authenticated := e.Group("/v1/auth")
	authenticated.Use(authMiddleware.Authenticate)
	authenticated.POST("/sync", authHandler.SyncProfile)
}
