// Package patient defines the patient resource: its read model and the
// payloads accepted by the patient endpoints.
package patient

import (
	"time"

	"github.com/deppfellow/patient-records/internal/model"
)

// Sex values accepted for a patient.
const (
	SexMale    = "male"
	SexFemale  = "female"
	SexOther   = "other"
	SexUnknown = "unknown"
)

// Columns lists the columns FromRow expects, in select order.
const Columns = "id, name, age, sex, created_at, updated_at"

// Patient is the read model returned by every patient endpoint that reads
// from the database.
type Patient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Sex       string    `json:"sex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromRow maps a patients row into a Patient.
func FromRow(row model.Row) (Patient, error) {
	r := model.NewRowReader("patient", row)

	p := Patient{
		ID:        r.Int64("id"),
		Name:      r.String("name"),
		Age:       r.Int("age"),
		Sex:       r.String("sex"),
		CreatedAt: r.Time("created_at"),
		UpdatedAt: r.Time("updated_at"),
	}

	if err := r.Err(); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// FromRows maps every row, stopping at the first one that fails.
func FromRows(rows []model.Row) ([]Patient, error) {
	patients := make([]Patient, 0, len(rows))
	for _, row := range rows {
		p, err := FromRow(row)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, nil
}
