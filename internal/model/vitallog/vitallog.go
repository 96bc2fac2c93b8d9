// Package vitallog defines vital-sign measurements recorded for a patient.
package vitallog

import (
	"errors"
	"time"

	"github.com/deppfellow/patient-records/internal/model"
	"github.com/deppfellow/patient-records/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const Columns = "id, patient_id, body_temperature, description, created_at, measured_at"

type VitalLog struct {
	ID              uuid.UUID        `json:"id"`
	PatientID       int64            `json:"patient_id"`
	BodyTemperature *decimal.Decimal `json:"body_temperature"`
	Description     *string          `json:"description"`
	CreatedAt       time.Time        `json:"created_at"`
	MeasuredAt      time.Time        `json:"measured_at"`
}

func FromRow(row model.Row) (VitalLog, error) {
	r := model.NewRowReader("vital log", row)

	v := VitalLog{
		ID:              r.UUID("id"),
		PatientID:       r.Int64("patient_id"),
		BodyTemperature: r.OptionalDecimal("body_temperature"),
		Description:     r.OptionalString("description"),
		CreatedAt:       r.Time("created_at"),
		MeasuredAt:      r.Time("measured_at"),
	}

	if err := r.Err(); err != nil {
		return VitalLog{}, err
	}
	return v, nil
}

func FromRows(rows []model.Row) ([]VitalLog, error) {
	logs := make([]VitalLog, 0, len(rows))
	for _, row := range rows {
		v, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		logs = append(logs, v)
	}
	return logs, nil
}

// ------------------------------------------------------------

// CreateVitalLogPayload is the body of POST /add-vital-log. MeasuredAt
// defaults to the time of insertion when omitted.
type CreateVitalLogPayload struct {
	PatientID       int64            `json:"patient_id" validate:"required,min=1"`
	BodyTemperature *decimal.Decimal `json:"body_temperature" validate:"omitempty,min=30,max=45"`
	Description     *string          `json:"description" validate:"omitempty,max=200"`
	MeasuredAt      *string          `json:"measured_at"`

	measuredAt *time.Time
}

func (p *CreateVitalLogPayload) Validate() error {
	var problems []error

	if err := validation.Struct(p); err != nil {
		problems = append(problems, err)
	}

	p.measuredAt = nil
	if p.MeasuredAt != nil {
		t, err := model.ParseTimestamp("measured_at", *p.MeasuredAt)
		if err != nil {
			problems = append(problems, err)
		} else {
			p.measuredAt = &t
		}
	}

	return errors.Join(problems...)
}

// MeasuredAtTime returns the parsed measurement time, or nil when it was omitted.
func (p *CreateVitalLogPayload) MeasuredAtTime() *time.Time {
	return p.measuredAt
}

// ------------------------------------------------------------

type ListVitalLogsQuery struct {
	PatientID int64 `param:"patient_id" validate:"required,min=1"`
}

func (q *ListVitalLogsQuery) Validate() error {
	return validation.Struct(q)
}
