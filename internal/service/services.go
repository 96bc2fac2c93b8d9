// Package service holds the operations behind each endpoint.
//
// Handlers pass validated payloads in, services call the repositories and
// log what they changed with the request logger carried by the context.
package service

import (
	"github.com/deppfellow/patient-records/internal/repository"
	"github.com/deppfellow/patient-records/internal/server"
)

type Services struct {
	Patient  *PatientService
	VitalLog *VitalLogService
	Person   *PersonService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Patient:  NewPatientService(s, repos.Patient),
		VitalLog: NewVitalLogService(s, repos.VitalLog),
		Person:   NewPersonService(s, repos.Person),
	}
}
