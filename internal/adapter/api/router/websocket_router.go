package router

import (
	"garagemap/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

func SetupWebSocketRouter(e *echo.Echo) {
	wsHandler := handler.GetWebSocketHandler()

	// Token auth happens inside the handler; the upgrade request carries it
	// as a query parameter.
	e.GET("/v1/ws", wsHandler.HandleWebSocket)
}
