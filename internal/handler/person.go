package handler

import (
	"github.com/deppfellow/patient-records/internal/model/person"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/deppfellow/patient-records/internal/service"
	"github.com/labstack/echo/v4"
)

// PersonHandler serves the older /tasks and /add_people endpoints.
type PersonHandler struct {
	Handler
	personService *service.PersonService
}

func NewPersonHandler(s *server.Server, personService *service.PersonService) *PersonHandler {
	return &PersonHandler{
		Handler:       NewHandler(s),
		personService: personService,
	}
}

func (h *PersonHandler) GetPeople(c echo.Context, _ *person.ListPeopleQuery) ([]person.Person, error) {
	return h.personService.ListPeople(c.Request().Context())
}

func (h *PersonHandler) AddPerson(c echo.Context, payload *person.AddPersonPayload) (*person.AddPersonResponse, error) {
	return h.personService.AddPerson(c.Request().Context(), payload)
}
