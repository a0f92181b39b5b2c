package router

import (
	"garagemap/internal/adapter/api/handler"
	"garagemap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupMechanicRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	mechanicHandler := handler.GetMechanicHandler()

	// Public directory
	mechanics := e.Group("/v1/mechanics")
	mechanics.GET("", mechanicHandler.ListMechanics)
	mechanics.GET("/:id", mechanicHandler.GetMechanic)

	// Workshop management
	authenticated := e.Group("/v1/mechanics")
	authenticated.Use(authMiddleware.Authenticate)
	authenticated.GET("/me", mechanicHandler.GetMyWorkshop)
	authenticated.POST("", mechanicHandler.CreateWorkshop)
	authenticated.PUT("/:id", mechanicHandler.UpdateWorkshop)
}
