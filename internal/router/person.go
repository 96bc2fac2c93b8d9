package router

import (
	"net/http"

	"github.com/deppfellow/patient-records/internal/handler"
	"github.com/deppfellow/patient-records/internal/middleware"
	"github.com/deppfellow/patient-records/internal/model/person"
	"github.com/labstack/echo/v4"
)

func registerPersonRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	ph := h.Person
	session := m.Session.Attach()

	r.GET("/tasks", handler.Handle(ph.Handler, ph.GetPeople, http.StatusOK, &person.ListPeopleQuery{}, session))
	r.POST("/add_people", handler.Handle(ph.Handler, ph.AddPerson, http.StatusOK, &person.AddPersonPayload{}, session))
}
