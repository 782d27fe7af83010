package router

import (
	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func SetupListingRouter(e *echo.Echo, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/api/listings")
	listings.GET("", listingHandler.ListListings)
	listings.GET("/:id", listingHandler.GetListing)
	listings.POST("", listingHandler.CreateListing, rateLimitMiddleware.Limit(ratelimit.ActionCreateListing))
	listings.PUT("/:id", listingHandler.UpdateListing)
	listings.DELETE("/:id", listingHandler.DeleteListing)

	e.GET("/api/categories", listingHandler.ListCategories)
}
