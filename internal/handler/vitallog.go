package handler

import (
	"github.com/deppfellow/patient-records/internal/model/vitallog"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/deppfellow/patient-records/internal/service"
	"github.com/labstack/echo/v4"
)

type VitalLogHandler struct {
	Handler
	vitalLogService *service.VitalLogService
}

func NewVitalLogHandler(s *server.Server, vitalLogService *service.VitalLogService) *VitalLogHandler {
	return &VitalLogHandler{
		Handler:         NewHandler(s),
		vitalLogService: vitalLogService,
	}
}

func (h *VitalLogHandler) AddVitalLog(c echo.Context, payload *vitallog.CreateVitalLogPayload) (*vitallog.VitalLog, error) {
	return h.vitalLogService.CreateVitalLog(c.Request().Context(), payload)
}

func (h *VitalLogHandler) GetVitalLogs(c echo.Context, query *vitallog.ListVitalLogsQuery) ([]vitallog.VitalLog, error) {
	return h.vitalLogService.ListVitalLogs(c.Request().Context(), query.PatientID)
}
