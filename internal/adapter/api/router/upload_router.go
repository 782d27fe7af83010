package router

import (
	"marketplace/internal/adapter/api/handler"
	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/infrastructure/ratelimit"

	"github.com/labstack/echo/v4"
)

func SetupUploadRouter(e *echo.Echo, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	uploadHandler := handler.GetUploadHandler()
	limit := rateLimitMiddleware.Limit(ratelimit.ActionUpload)

	upload := e.Group("/api/upload")
	upload.POST("", uploadHandler.UploadImage, limit)
	upload.POST("/multiple", uploadHandler.UploadImages, limit)
	upload.DELETE("/:path", uploadHandler.DeleteImage)
	upload.GET("/url/:path", uploadHandler.GetImageURL)
}
