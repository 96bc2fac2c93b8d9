package router

import (
	"net/http"

	"github.com/deppfellow/patient-records/internal/handler"
	"github.com/deppfellow/patient-records/internal/middleware"
	"github.com/deppfellow/patient-records/internal/model/vitallog"
	"github.com/labstack/echo/v4"
)

func registerVitalLogRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	vh := h.VitalLog
	session := m.Session.Attach()

	r.POST("/add-vital-log", handler.Handle(vh.Handler, vh.AddVitalLog, http.StatusOK, &vitallog.CreateVitalLogPayload{}, session))
	r.GET("/get-vital-logs/:patient_id", handler.Handle(vh.Handler, vh.GetVitalLogs, http.StatusOK, &vitallog.ListVitalLogsQuery{}, session))
}
