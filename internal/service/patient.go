package service

import (
	"context"
	"time"

	"github.com/deppfellow/patient-records/internal/model/patient"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/rs/zerolog"
)

type PatientRepository interface {
	CreatePatient(ctx context.Context, payload *patient.CreatePatientPayload) error
	ListPatients(ctx context.Context) ([]patient.Patient, error)
	ListPatientsByCreatedAt(ctx context.Context, start, end time.Time) ([]patient.Patient, error)
	UpdatePatient(ctx context.Context, payload *patient.UpdatePatientPayload) (*patient.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
}

type PatientService struct {
	server *server.Server
	repo   PatientRepository
}

func NewPatientService(s *server.Server, repo PatientRepository) *PatientService {
	return &PatientService{server: s, repo: repo}
}

// CreatePatient stores the patient and returns the accepted payload.
func (s *PatientService) CreatePatient(ctx context.Context, payload *patient.CreatePatientPayload) (*patient.CreatePatientPayload, error) {
	if err := s.repo.CreatePatient(ctx, payload); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "patient_created").
		Str("sex", payload.Sex).
		Msg("patient created")

	return payload, nil
}

func (s *PatientService) ListPatients(ctx context.Context) ([]patient.Patient, error) {
	return s.repo.ListPatients(ctx)
}

func (s *PatientService) ListPatientsByDate(ctx context.Context, start, end time.Time) ([]patient.Patient, error) {
	return s.repo.ListPatientsByCreatedAt(ctx, start, end)
}

func (s *PatientService) UpdatePatient(ctx context.Context, payload *patient.UpdatePatientPayload) (*patient.Patient, error) {
	updated, err := s.repo.UpdatePatient(ctx, payload)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "patient_updated").
		Int64("patient_id", updated.ID).
		Msg("patient updated")

	return updated, nil
}

func (s *PatientService) DeletePatient(ctx context.Context, id int64) error {
	if err := s.repo.DeletePatient(ctx, id); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "patient_deleted").
		Int64("patient_id", id).
		Msg("patient deleted")

	return nil
}
