package router

import (
	"garagemap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupMechanicRouter(e, authMiddleware)
	SetupRequestRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupWebSocketRouter(e)
	SetupHealthRouter(e)
}
