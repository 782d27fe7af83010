package router

import (
	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func SetupPageRouter(e *echo.Echo, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	pageHandler := handler.GetPageHandler()

	pages := e.Group("/pages")
	pages.GET("/home", pageHandler.Home)
	pages.GET("/listing/:id", pageHandler.ListingDetail)
	pages.POST("/listing/:id/message", pageHandler.SendListingMessage, rateLimitMiddleware.Limit(ratelimit.ActionSendMessage))
	pages.POST("/create", pageHandler.CreateListing, rateLimitMiddleware.Limit(ratelimit.ActionCreateListing))
	pages.GET("/messages", pageHandler.Messages)
}
