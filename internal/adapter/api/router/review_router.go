package router

import (
	"garagemap/internal/adapter/api/handler"
	"garagemap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	// Public: workshop review listings
	e.GET("/v1/mechanics/:id/reviews", reviewHandler.GetMechanicReviews)

	authenticated := e.Group("")
	authenticated.Use(authMiddleware.Authenticate)
	authenticated.POST("/v1/requests/:id/rating", reviewHandler.SubmitRating)
}
