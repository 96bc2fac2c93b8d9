// Package repository runs the SQL behind every endpoint.
//
// Repositories execute on the request's database session when one is
// present in the context, falling back to the pool otherwise. Every write
// is a single statement committed on its own.
package repository

import (
	"github.com/deppfellow/patient-records/internal/server"
)

type Repositories struct {
	Patient  *PatientRepository
	VitalLog *VitalLogRepository
	Person   *PersonRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Patient:  NewPatientRepository(s),
		VitalLog: NewVitalLogRepository(s),
		Person:   NewPersonRepository(s),
	}
}
