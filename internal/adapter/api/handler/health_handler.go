package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	storageDriver string
}

var healthHandler *HealthHandler

func NewHealthHandler(storageDriver string) *HealthHandler {
	return &HealthHandler{
		storageDriver: storageDriver,
	}
}

func SetupHealthHandler(storageDriver string) {
	healthHandler = NewHealthHandler(storageDriver)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "Server is running",
		"storage": h.storageDriver,
		"time":    time.Now().Format(time.RFC3339),
	})
}
