// Package handler is the HTTP layer. Each endpoint receives a bound and
// validated payload through Handle, calls a service and returns the body to
// serialize.
package handler

import (
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/deppfellow/patient-records/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Patient  *PatientHandler
	VitalLog *VitalLogHandler
	Person   *PersonHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Patient:  NewPatientHandler(s, services.Patient),
		VitalLog: NewVitalLogHandler(s, services.VitalLog),
		Person:   NewPersonHandler(s, services.Person),
	}
}
