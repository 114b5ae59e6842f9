package handlers

import (
	"net/http"

	"legal_editor_app_go/services"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and the number of open sessions
func HealthHandler(c echo.Context) error {
	storage := "none"
	switch services.Storage.(type) {
	case *services.R2Storage:
		storage = "r2"
	case *services.LocalStorage:
		storage = "local"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": services.Documents.Count(),
		"storage":  storage,
	})
}
