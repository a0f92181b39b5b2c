package router

import (
	"garagemap/internal/adapter/api/handler"
	"garagemap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRequestRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	requestHandler := handler.GetRequestHandler()

	requests := e.Group("/v1/requests")
	requests.Use(authMiddleware.Authenticate)

	requests.POST("", requestHandler.CreateRequest)
	requests.GET("", requestHandler.ListMyRequests)
	requests.GET("/assigned", requestHandler.ListAssignedRequests)
	requests.GET("/:id", requestHandler.GetRequest)
	requests.POST("/:id/status", requestHandler.UpdateStatus)
}
