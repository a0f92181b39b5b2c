package router

import (
	"garagemap/internal/adapter/api/handler"
	"garagemap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.GetMyProfile)
	users.PATCH("/me", userHandler.UpdateMyProfile)
	users.PATCH("/me/role", userHandler.UpdateMyRole)
	users.POST("/me/password", userHandler.ChangePassword)
}
