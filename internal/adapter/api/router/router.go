package router

import (
	"marketplace/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, principalMiddleware *middleware.PrincipalMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	e.Use(principalMiddleware.Attach)

	SetupListingRouter(e, rateLimitMiddleware)
	SetupMessageRouter(e, rateLimitMiddleware)
	SetupUploadRouter(e, rateLimitMiddleware)
	SetupPageRouter(e, rateLimitMiddleware)
	SetupHealthRouter(e)
}
