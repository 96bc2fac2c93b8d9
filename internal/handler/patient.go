package handler

import (
	"github.com/deppfellow/patient-records/internal/model"
	"github.com/deppfellow/patient-records/internal/model/patient"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/deppfellow/patient-records/internal/service"
	"github.com/labstack/echo/v4"
)

type PatientHandler struct {
	Handler
	patientService *service.PatientService
}

func NewPatientHandler(s *server.Server, patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{
		Handler:        NewHandler(s),
		patientService: patientService,
	}
}

// AddPatient responds with the accepted input; the generated id is not
// returned.
func (h *PatientHandler) AddPatient(c echo.Context, payload *patient.CreatePatientPayload) (*patient.CreatePatientPayload, error) {
	return h.patientService.CreatePatient(c.Request().Context(), payload)
}

func (h *PatientHandler) GetPatients(c echo.Context, _ *patient.ListPatientsQuery) ([]patient.Patient, error) {
	return h.patientService.ListPatients(c.Request().Context())
}

func (h *PatientHandler) GetPatientsByDate(c echo.Context, query *patient.ListByDateQuery) ([]patient.Patient, error) {
	start, end := query.Range()
	return h.patientService.ListPatientsByDate(c.Request().Context(), start, end)
}

func (h *PatientHandler) UpdatePatient(c echo.Context, payload *patient.UpdatePatientPayload) (*patient.Patient, error) {
	return h.patientService.UpdatePatient(c.Request().Context(), payload)
}

func (h *PatientHandler) DeletePatient(c echo.Context, payload *patient.DeletePatientPayload) (model.MessageResponse, error) {
	if err := h.patientService.DeletePatient(c.Request().Context(), payload.PatientID); err != nil {
		return model.MessageResponse{}, err
	}
	return model.MessageResponse{Message: "patient deleted"}, nil
}
