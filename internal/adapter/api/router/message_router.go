package router

import (
	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func SetupMessageRouter(e *echo.Echo, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	messageHandler := handler.GetMessageHandler()

	messages := e.Group("/api/messages")
	messages.GET("", messageHandler.ListListingMessages)
	messages.GET("/seller", messageHandler.ListSellerMessages)
	messages.POST("", messageHandler.SendMessage, rateLimitMiddleware.Limit(ratelimit.ActionSendMessage))
	messages.DELETE("/:id", messageHandler.DeleteMessage)
}
