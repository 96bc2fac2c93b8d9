package router

import (
	"github.com/deppfellow/patient-records/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the routes that never touch patient data
// and run without a database session.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
