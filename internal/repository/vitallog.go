package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/patient-records/internal/database"
	"github.com/deppfellow/patient-records/internal/model/vitallog"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type VitalLogRepository struct {
	server *server.Server
}

func NewVitalLogRepository(s *server.Server) *VitalLogRepository {
	return &VitalLogRepository{server: s}
}

// CreateVitalLog inserts a measurement with a freshly generated id and
// returns the stored row.
func (r *VitalLogRepository) CreateVitalLog(ctx context.Context, payload *vitallog.CreateVitalLogPayload) (*vitallog.VitalLog, error) {
	stmt := `
		INSERT INTO
			vital_logs (id, patient_id, body_temperature, description, measured_at)
		VALUES
			(@id, @patient_id, @body_temperature, @description, COALESCE(@measured_at, now()))
		RETURNING
			` + vitallog.Columns

	var bodyTemperature any
	if payload.BodyTemperature != nil {
		bodyTemperature = payload.BodyTemperature.String()
	}

	var created vitallog.VitalLog
	err := database.WithCommit(ctx, database.Session(ctx, r.server.DB.Pool), func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, stmt, pgx.NamedArgs{
			"id":               uuid.New(),
			"patient_id":       payload.PatientID,
			"body_temperature": bodyTemperature,
			"description":      payload.Description,
			"measured_at":      payload.MeasuredAtTime(),
		})
		if err != nil {
			return fmt.Errorf("failed to insert vital log for patient_id=%d: %w", payload.PatientID, err)
		}

		row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
		if err != nil {
			return fmt.Errorf("failed to collect row from table:vital_logs: %w", err)
		}

		created, err = vitallog.FromRow(row)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// ListVitalLogsByPatient returns a patient's measurements, most recent first.
func (r *VitalLogRepository) ListVitalLogsByPatient(ctx context.Context, patientID int64) ([]vitallog.VitalLog, error) {
	stmt := `
		SELECT
			` + vitallog.Columns + `
		FROM
			vital_logs
		WHERE
			patient_id = @patient_id
		ORDER BY
			measured_at DESC,
			created_at DESC
	`

	rows, err := database.Session(ctx, r.server.DB.Pool).Query(ctx, stmt, pgx.NamedArgs{"patient_id": patientID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute vital logs query for patient_id=%d: %w", patientID, err)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:vital_logs: %w", err)
	}

	return vitallog.FromRows(collected)
}
