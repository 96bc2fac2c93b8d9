package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/patient-records/internal/database"
	"github.com/deppfellow/patient-records/internal/model/patient"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/jackc/pgx/v5"
)

type PatientRepository struct {
	server *server.Server
}

func NewPatientRepository(s *server.Server) *PatientRepository {
	return &PatientRepository{server: s}
}

func (r *PatientRepository) session(ctx context.Context) database.Querier {
	return database.Session(ctx, r.server.DB.Pool)
}

func (r *PatientRepository) CreatePatient(ctx context.Context, payload *patient.CreatePatientPayload) error {
	stmt := `
		INSERT INTO
			patients (name, age, sex)
		VALUES
			(@name, @age, @sex)
	`

	return database.WithCommit(ctx, r.session(ctx), func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, stmt, pgx.NamedArgs{
			"name": payload.Name,
			"age":  payload.Age,
			"sex":  payload.Sex,
		})
		if err != nil {
			return fmt.Errorf("failed to insert patient: %w", err)
		}
		return nil
	})
}

func (r *PatientRepository) ListPatients(ctx context.Context) ([]patient.Patient, error) {
	stmt := `SELECT ` + patient.Columns + ` FROM patients ORDER BY id`

	return r.queryPatients(ctx, stmt, nil)
}

// ListPatientsByCreatedAt returns patients whose created_at lies in [start, end].
func (r *PatientRepository) ListPatientsByCreatedAt(ctx context.Context, start, end time.Time) ([]patient.Patient, error) {
	stmt := `
		SELECT
			` + patient.Columns + `
		FROM
			patients
		WHERE
			created_at BETWEEN @start_date AND @end_date
		ORDER BY
			id
	`

	return r.queryPatients(ctx, stmt, pgx.NamedArgs{
		"start_date": start,
		"end_date":   end,
	})
}

// UpdatePatient applies the fields present in payload in one committed
// statement, then reads the row back. A missing patient surfaces as
// pgx.ErrNoRows from the read.
func (r *PatientRepository) UpdatePatient(ctx context.Context, payload *patient.UpdatePatientPayload) (*patient.Patient, error) {
	stmt := `
		UPDATE patients
		SET
			name = COALESCE(@name, name),
			age = COALESCE(@age, age),
			sex = COALESCE(@sex, sex),
			updated_at = now()
		WHERE
			id = @id
	`

	err := database.WithCommit(ctx, r.session(ctx), func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, stmt, pgx.NamedArgs{
			"id":   payload.PatientID,
			"name": payload.Name,
			"age":  payload.Age,
			"sex":  payload.Sex,
		})
		if err != nil {
			return fmt.Errorf("failed to update patient id=%d: %w", payload.PatientID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetPatientByID(ctx, payload.PatientID)
}

func (r *PatientRepository) GetPatientByID(ctx context.Context, id int64) (*patient.Patient, error) {
	stmt := `SELECT ` + patient.Columns + ` FROM patients WHERE id = @id`

	rows, err := r.session(ctx).Query(ctx, stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get patient query for id=%d: %w", id, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:patients: for id=%d: %w", id, err)
	}

	p, err := patient.FromRow(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePatient removes the patient if present. Deleting an unknown id is not an error.
func (r *PatientRepository) DeletePatient(ctx context.Context, id int64) error {
	stmt := `DELETE FROM patients WHERE id = @id`

	return database.WithCommit(ctx, r.session(ctx), func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, stmt, pgx.NamedArgs{"id": id}); err != nil {
			return fmt.Errorf("failed to delete patient id=%d: %w", id, err)
		}
		return nil
	})
}

func (r *PatientRepository) queryPatients(ctx context.Context, stmt string, args pgx.NamedArgs) ([]patient.Patient, error) {
	var queryArgs []any
	if args != nil {
		queryArgs = append(queryArgs, args)
	}

	rows, err := r.session(ctx).Query(ctx, stmt, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute patients query: %w", err)
	}

	collected, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:patients: %w", err)
	}

	return patient.FromRows(collected)
}
