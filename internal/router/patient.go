package router

import (
	"net/http"

	"github.com/deppfellow/patient-records/internal/handler"
	"github.com/deppfellow/patient-records/internal/middleware"
	"github.com/deppfellow/patient-records/internal/model/patient"
	"github.com/labstack/echo/v4"
)

// registerPatientRoutes registers the patient CRUD routes. Each handler runs
// on its own database session, acquired once the request has been validated.
func registerPatientRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	ph := h.Patient
	session := m.Session.Attach()

	r.POST("/add-patient", handler.Handle(ph.Handler, ph.AddPatient, http.StatusOK, &patient.CreatePatientPayload{}, session))
	r.GET("/get-patients", handler.Handle(ph.Handler, ph.GetPatients, http.StatusOK, &patient.ListPatientsQuery{}, session))
	r.GET("/get-patients-by-date", handler.Handle(ph.Handler, ph.GetPatientsByDate, http.StatusOK, &patient.ListByDateQuery{}, session))
	r.PUT("/update-patient/:patient_id", handler.Handle(ph.Handler, ph.UpdatePatient, http.StatusOK, &patient.UpdatePatientPayload{}, session))
	r.DELETE("/delete-patient/:patient_id", handler.Handle(ph.Handler, ph.DeletePatient, http.StatusOK, &patient.DeletePatientPayload{}, session))
}
