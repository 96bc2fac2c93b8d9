package patient

import (
	"errors"
	"time"

	"github.com/deppfellow/patient-records/internal/model"
	"github.com/deppfellow/patient-records/internal/validation"
)

// ------------------------------------------------------------

// CreatePatientPayload is the body of POST /add-patient. Identity and
// timestamps are assigned by the database and cannot be supplied.
type CreatePatientPayload struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
	Age  *int   `json:"age" validate:"required,min=0"`
	Sex  string `json:"sex" validate:"required,oneof=male female other unknown"`
}

func (p *CreatePatientPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// UpdatePatientPayload is the body of PUT /update-patient/:patient_id.
// Omitted fields keep their stored value.
type UpdatePatientPayload struct {
	PatientID int64   `param:"patient_id" json:"-"`
	Name      *string `json:"name" validate:"omitempty,min=1,max=50"`
	Age       *int    `json:"age" validate:"omitempty,min=0"`
	Sex       *string `json:"sex" validate:"omitempty,oneof=male female other unknown"`
}

func (p *UpdatePatientPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type DeletePatientPayload struct {
	PatientID int64 `param:"patient_id"`
}

func (p *DeletePatientPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

type ListPatientsQuery struct{}

func (q *ListPatientsQuery) Validate() error {
	return nil
}

// ------------------------------------------------------------

// ListByDateQuery selects patients created between StartDate and EndDate,
// both inclusive.
type ListByDateQuery struct {
	StartDate string `query:"start_date" validate:"required"`
	EndDate   string `query:"end_date" validate:"required"`

	start time.Time
	end   time.Time
}

// Validate checks presence and parses both bounds, reporting every problem at once.
func (q *ListByDateQuery) Validate() error {
	var problems []error

	if err := validation.Struct(q); err != nil {
		problems = append(problems, err)
	}

	if q.StartDate != "" {
		start, err := model.ParseTimestamp("start_date", q.StartDate)
		if err != nil {
			problems = append(problems, err)
		}
		q.start = start
	}

	if q.EndDate != "" {
		end, err := model.ParseTimestamp("end_date", q.EndDate)
		if err != nil {
			problems = append(problems, err)
		}
		q.end = end
	}

	return errors.Join(problems...)
}

// Range returns the parsed bounds. It is only meaningful after Validate succeeded.
func (q *ListByDateQuery) Range() (time.Time, time.Time) {
	return q.start, q.end
}
