package service

import (
	"context"

	"github.com/deppfellow/patient-records/internal/model/vitallog"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/rs/zerolog"
)

type VitalLogRepository interface {
	CreateVitalLog(ctx context.Context, payload *vitallog.CreateVitalLogPayload) (*vitallog.VitalLog, error)
	ListVitalLogsByPatient(ctx context.Context, patientID int64) ([]vitallog.VitalLog, error)
}

type VitalLogService struct {
	server *server.Server
	repo   VitalLogRepository
}

func NewVitalLogService(s *server.Server, repo VitalLogRepository) *VitalLogService {
	return &VitalLogService{server: s, repo: repo}
}

// CreateVitalLog records a measurement. An unknown patient is rejected by
// the foreign key and surfaces as a database error.
func (s *VitalLogService) CreateVitalLog(ctx context.Context, payload *vitallog.CreateVitalLogPayload) (*vitallog.VitalLog, error) {
	created, err := s.repo.CreateVitalLog(ctx, payload)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("event", "vital_log_created").
		Str("vital_log_id", created.ID.String()).
		Int64("patient_id", created.PatientID).
		Msg("vital log created")

	return created, nil
}

func (s *VitalLogService) ListVitalLogs(ctx context.Context, patientID int64) ([]vitallog.VitalLog, error) {
	return s.repo.ListVitalLogsByPatient(ctx, patientID)
}
