// Package router builds the echo instance: global middleware, the error
// handler and every route.
package router

import (
	"github.com/deppfellow/patient-records/internal/handler"
	"github.com/deppfellow/patient-records/internal/middleware"
	"github.com/labstack/echo/v4"
)

func NewRouter(h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		m.Global.CORS(),
		m.Global.Secure(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.RateLimit.Limit(),
		m.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerPatientRoutes(router, h, m)
	registerVitalLogRoutes(router, h, m)
	registerPersonRoutes(router, h, m)

	return router
}
