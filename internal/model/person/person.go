// Package person is the legacy "users" resource served by /tasks and /add_people.
package person

import (
	"github.com/deppfellow/patient-records/internal/model"
	"github.com/deppfellow/patient-records/internal/validation"
)

type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func FromRow(row model.Row) (Person, error) {
	r := model.NewRowReader("person", row)

	p := Person{
		ID:   r.Int64("id"),
		Name: r.String("name"),
		Age:  r.Int("age"),
	}

	if err := r.Err(); err != nil {
		return Person{}, err
	}
	return p, nil
}

type AddPersonPayload struct {
	Name string `json:"name" validate:"required,min=1"`
	Age  *int   `json:"age" validate:"required,min=0,max=150"`
}

func (p *AddPersonPayload) Validate() error {
	return validation.Struct(p)
}

// AddPersonResponse echoes the stored person back to the caller.
type AddPersonResponse struct {
	Message string            `json:"message"`
	Person  *AddPersonPayload `json:"person"`
}

type ListPeopleQuery struct{}

func (q *ListPeopleQuery) Validate() error {
	return nil
}
