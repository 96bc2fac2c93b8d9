package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/patient-records/internal/config"
	"github.com/deppfellow/patient-records/internal/errs"
	"github.com/deppfellow/patient-records/internal/middleware"
	"github.com/deppfellow/patient-records/internal/model/patient"
	"github.com/deppfellow/patient-records/internal/model/person"
	"github.com/deppfellow/patient-records/internal/model/vitallog"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/deppfellow/patient-records/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatients struct {
	mu        sync.Mutex
	rows      []patient.Patient
	updates   []patient.UpdatePatientPayload
	deleted   []int64
	dateRange [2]time.Time
}

func (f *fakePatients) CreatePatient(_ context.Context, p *patient.CreatePatientPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, patient.Patient{ID: int64(len(f.rows) + 1), Name: p.Name, Age: *p.Age, Sex: p.Sex})
	return nil
}

func (f *fakePatients) ListPatients(context.Context) ([]patient.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]patient.Patient{}, f.rows...), nil
}

func (f *fakePatients) ListPatientsByCreatedAt(_ context.Context, start, end time.Time) ([]patient.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dateRange = [2]time.Time{start, end}
	return []patient.Patient{}, nil
}

func (f *fakePatients) UpdatePatient(_ context.Context, p *patient.UpdatePatientPayload) (*patient.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, *p)
	for _, row := range f.rows {
		if row.ID == p.PatientID {
			if p.Name != nil {
				row.Name = *p.Name
			}
			return &row, nil
		}
	}
	return nil, fmt.Errorf("failed to collect row from table:patients: for id=%d: %w", p.PatientID, pgx.ErrNoRows)
}

func (f *fakePatients) DeletePatient(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeVitalLogs struct{}

func (fakeVitalLogs) CreateVitalLog(_ context.Context, p *vitallog.CreateVitalLogPayload) (*vitallog.VitalLog, error) {
	measured := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if t := p.MeasuredAtTime(); t != nil {
		measured = *t
	}
	return &vitallog.VitalLog{
		ID:              uuid.MustParse("4b8b2f6e-7a43-4c1e-9d55-0b6f1f0a2c11"),
		PatientID:       p.PatientID,
		BodyTemperature: p.BodyTemperature,
		Description:     p.Description,
		CreatedAt:       measured,
		MeasuredAt:      measured,
	}, nil
}

func (fakeVitalLogs) ListVitalLogsByPatient(context.Context, int64) ([]vitallog.VitalLog, error) {
	return []vitallog.VitalLog{}, nil
}

type fakePeople struct{}

func (fakePeople) ListPeople(context.Context) ([]person.Person, error) {
	return []person.Person{{ID: 2, Name: "Bob", Age: 30}, {ID: 1, Name: "Alice", Age: 25}}, nil
}

func (fakePeople) AddPerson(context.Context, *person.AddPersonPayload) error {
	return nil
}

type testAPI struct {
	echo     *echo.Echo
	handlers *Handlers
	patients *fakePatients
}

// newTestAPI wires the handlers to in-memory repositories on a bare echo
// instance using the production error handler.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := zerolog.Nop()
	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Observability.HealthChecks.Enabled = false
	s := &server.Server{Config: cfg, Logger: &logger}

	patients := &fakePatients{}
	services := &service.Services{
		Patient:  service.NewPatientService(s, patients),
		VitalLog: service.NewVitalLogService(s, fakeVitalLogs{}),
		Person:   service.NewPersonService(s, fakePeople{}),
	}
	h := NewHandlers(s, services)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler

	e.GET("/healthz", h.Health.Liveness)
	e.GET("/status", h.Health.CheckHealth)
	e.POST("/add-patient", Handle(h.Patient.Handler, h.Patient.AddPatient, http.StatusOK, &patient.CreatePatientPayload{}))
	e.GET("/get-patients", Handle(h.Patient.Handler, h.Patient.GetPatients, http.StatusOK, &patient.ListPatientsQuery{}))
	e.GET("/get-patients-by-date", Handle(h.Patient.Handler, h.Patient.GetPatientsByDate, http.StatusOK, &patient.ListByDateQuery{}))
	e.PUT("/update-patient/:patient_id", Handle(h.Patient.Handler, h.Patient.UpdatePatient, http.StatusOK, &patient.UpdatePatientPayload{}))
	e.DELETE("/delete-patient/:patient_id", Handle(h.Patient.Handler, h.Patient.DeletePatient, http.StatusOK, &patient.DeletePatientPayload{}))
	e.POST("/add-vital-log", Handle(h.VitalLog.Handler, h.VitalLog.AddVitalLog, http.StatusOK, &vitallog.CreateVitalLogPayload{}))
	e.GET("/get-vital-logs/:patient_id", Handle(h.VitalLog.Handler, h.VitalLog.GetVitalLogs, http.StatusOK, &vitallog.ListVitalLogsQuery{}))
	e.GET("/tasks", Handle(h.Person.Handler, h.Person.GetPeople, http.StatusOK, &person.ListPeopleQuery{}))
	e.POST("/add_people", Handle(h.Person.Handler, h.Person.AddPerson, http.StatusOK, &person.AddPersonPayload{}))

	return &testAPI{echo: e, handlers: h, patients: patients}
}

func (api *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)
	return rec
}

func decodeHTTPError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func fieldNames(fieldErrors []errs.FieldError) []string {
	names := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		names = append(names, fe.Field)
	}
	return names
}

func TestAddPatient(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/add-patient", `{"name":"Alice","age":30,"sex":"female"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Alice","age":30,"sex":"female"}`, rec.Body.String())
	assert.Len(t, api.patients.rows, 1)
}

func TestAddPatient_ValidationListsEveryField(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/add-patient", `{"name":"","age":-1,"sex":"robot"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeHTTPError(t, rec)
	assert.ElementsMatch(t, []string{"name", "age", "sex"}, fieldNames(body.Errors))
	assert.Empty(t, api.patients.rows)
}

func TestAddPatient_WrongType(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/add-patient", `{"name":"Alice","age":"thirty","sex":"female"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeHTTPError(t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "age", Error: "must be of type integer"}, body.Errors[0])
}

func TestGetPatients_Empty(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/get-patients", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetPatientsByDate(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/get-patients-by-date?start_date=2024-01-01&end_date=2024-01-31T12:00:00Z", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, api.patients.dateRange[0].Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, api.patients.dateRange[1].Equal(time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)))
}

func TestGetPatientsByDate_UnencodedOffset(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/get-patients-by-date?start_date=2024-01-01T09:00:00+09:00&end_date=2024-01-01T09:00:00%2B09:00", "")

	require.Equal(t, http.StatusOK, rec.Code)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, api.patients.dateRange[0].Equal(want))
	assert.True(t, api.patients.dateRange[1].Equal(want))
}

func TestGetPatientsByDate_ParseError(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/get-patients-by-date?start_date=yesterday&end_date=2024-01-31", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeHTTPError(t, rec)
	assert.Equal(t, []string{"start_date"}, fieldNames(body.Errors))
}

func TestGetPatientsByDate_MissingParams(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/get-patients-by-date", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeHTTPError(t, rec)
	assert.ElementsMatch(t, []string{"start_date", "end_date"}, fieldNames(body.Errors))
}

func TestAddPatient_InvalidSex(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/add-patient", `{"name":"Alice","age":30,"sex":"robot"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeHTTPError(t, rec)
	assert.Equal(t, []errs.FieldError{{Field: "sex", Error: "must be one of: male female other unknown"}}, body.Errors)
	assert.Empty(t, api.patients.rows)
}

func TestUpdatePatient(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/add-patient", `{"name":"Alice","age":30,"sex":"female"}`).Code)

	rec := api.do(http.MethodPut, "/update-patient/1", `{"name":"Alicia"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var updated patient.Patient
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Alicia", updated.Name)
}

func TestUpdatePatient_NotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPut, "/update-patient/404", `{"name":"Ghost"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeHTTPError(t, rec)
	assert.Equal(t, "PATIENT_NOT_FOUND", body.Code)
}

func TestUpdatePatient_RequestsDoNotShareState(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/add-patient", `{"name":"Alice","age":30,"sex":"female"}`).Code)

	require.Equal(t, http.StatusOK, api.do(http.MethodPut, "/update-patient/1", `{"name":"Alicia"}`).Code)
	require.Equal(t, http.StatusOK, api.do(http.MethodPut, "/update-patient/1", `{"age":31}`).Code)

	require.Len(t, api.patients.updates, 2)
	assert.Nil(t, api.patients.updates[1].Name)
	require.NotNil(t, api.patients.updates[1].Age)
	assert.Equal(t, 31, *api.patients.updates[1].Age)
}

func TestUpdatePatient_NonNumericID(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPut, "/update-patient/abc", `{"name":"Alicia"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, api.patients.updates)
}

func TestUpdatePatient_NonPositiveIDIsNotFound(t *testing.T) {
	for _, id := range []string{"0", "-3"} {
		t.Run(id, func(t *testing.T) {
			api := newTestAPI(t)

			rec := api.do(http.MethodPut, "/update-patient/"+id, `{"name":"Alicia"}`)

			require.Equal(t, http.StatusNotFound, rec.Code)
			body := decodeHTTPError(t, rec)
			assert.Equal(t, "PATIENT_NOT_FOUND", body.Code)
			assert.Equal(t, "Patient not found", body.Message)
		})
	}
}

func TestDeletePatient(t *testing.T) {
	for _, id := range []int64{12345, 0, -3} {
		t.Run(fmt.Sprint(id), func(t *testing.T) {
			api := newTestAPI(t)

			rec := api.do(http.MethodDelete, fmt.Sprintf("/delete-patient/%d", id), "")

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"message":"patient deleted"}`, rec.Body.String())
			assert.Equal(t, []int64{id}, api.patients.deleted)
		})
	}
}

func TestHandle_AroundRunsOnlyAfterValidation(t *testing.T) {
	api := newTestAPI(t)

	var acquired int
	unavailable := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			acquired++
			return errs.NewServiceUnavailableError("Database unavailable")
		}
	}
	api.echo.POST("/guarded-patient", Handle(api.handlers.Patient.Handler, api.handlers.Patient.AddPatient,
		http.StatusOK, &patient.CreatePatientPayload{}, unavailable))

	rec := api.do(http.MethodPost, "/guarded-patient", `{"name":"","age":-1,"sex":"robot"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, acquired)

	rec = api.do(http.MethodPost, "/guarded-patient", `{"name":"Alice","age":30,"sex":"female"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 1, acquired)
	assert.Empty(t, api.patients.rows)
}

func TestAddVitalLog(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/add-vital-log",
		`{"patient_id":1,"body_temperature":"37.5","description":"evening","measured_at":"2024-03-01 08:30:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "37.5", created["body_temperature"])
	assert.Equal(t, "2024-03-01T08:30:00Z", created["measured_at"])
}

func TestAddVitalLog_OutOfRange(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/add-vital-log", `{"patient_id":1,"body_temperature":50,"measured_at":"soon"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeHTTPError(t, rec)
	assert.ElementsMatch(t, []string{"body_temperature", "measured_at"}, fieldNames(body.Errors))
}

func TestGetVitalLogs(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/get-vital-logs/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPeople(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":2,"name":"Bob","age":30},{"id":1,"name":"Alice","age":25}]`, rec.Body.String())

	rec = api.do(http.MethodPost, "/add_people", `{"name":"Carol","age":151}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/add_people", `{"name":"Carol","age":40}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"person added","person":{"name":"Carol","age":40}}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = api.do(http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])
}

func TestServeOpenAPIUI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi.html"), []byte("<html>docs</html>"), 0o600))

	logger := zerolog.Nop()
	h := NewOpenAPIHandler(&server.Server{Config: config.DefaultConfig(), Logger: &logger})
	h.staticDir = dir

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.ServeOpenAPIUI(e.NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "docs")

	h.staticDir = filepath.Join(dir, "missing")
	assert.Error(t, h.ServeOpenAPIUI(e.NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), httptest.NewRecorder())))
}
