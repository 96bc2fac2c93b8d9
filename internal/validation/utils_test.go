package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/patient-records/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	ID    int64  `param:"id" json:"-" validate:"required,min=1"`
	Name  string `json:"name" validate:"required,max=5"`
	Count *int   `json:"count" validate:"required,gte=0"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
}

func (p *samplePayload) Validate() error {
	return Struct(p)
}

type notePayload struct {
	Note string `json:"note"`
}

func (p *notePayload) Validate() error {
	if p.Note == "bad" {
		return errors.New("note must not be bad")
	}
	return nil
}

type reporterError struct{}

func (reporterError) Error() string { return "reporter" }

func (reporterError) FieldErrors() []errs.FieldError {
	return []errs.FieldError{{Field: "when", Error: "must be a date"}}
}

type joinedPayload struct {
	Name string `json:"name" validate:"required"`
}

func (p *joinedPayload) Validate() error {
	return errors.Join(Struct(p), reporterError{})
}

func newContext(method, target, body string, paramValue string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	if paramValue != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramValue)
	}
	return c, rec
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_Success(t *testing.T) {
	c, _ := newContext(http.MethodPut, "/things/3", `{"name":"abc","count":2,"kind":"a"}`, "3")

	var payload samplePayload
	require.NoError(t, BindAndValidate(c, &payload))
	assert.Equal(t, int64(3), payload.ID)
	assert.Equal(t, "abc", payload.Name)
	assert.Equal(t, 2, *payload.Count)
}

func TestBindAndValidate_ReportsEveryField(t *testing.T) {
	c, _ := newContext(http.MethodPut, "/things/0", `{"name":"toolong","kind":"z"}`, "0")

	httpErr := requireHTTPError(t, BindAndValidate(c, &samplePayload{}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "id", Error: "is required"},
		{Field: "name", Error: "must not exceed 5 characters"},
		{Field: "count", Error: "is required"},
		{Field: "kind", Error: "must be one of: a b"},
	}, httpErr.Errors)
}

func TestBindAndValidate_TypeMismatch(t *testing.T) {
	c, _ := newContext(http.MethodPut, "/things/1", `{"name":"abc","count":"two"}`, "1")

	httpErr := requireHTTPError(t, BindAndValidate(c, &samplePayload{}))

	assert.Equal(t, []errs.FieldError{{Field: "count", Error: "must be of type integer"}}, httpErr.Errors)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c, _ := newContext(http.MethodPut, "/things/1", `{"name":`, "1")

	httpErr := requireHTTPError(t, BindAndValidate(c, &samplePayload{}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_ErrorWithoutFields(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/notes", `{"note":"bad"}`, "")

	httpErr := requireHTTPError(t, BindAndValidate(c, &notePayload{}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed: note must not be bad", httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_JoinedErrors(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/joined", `{}`, "")

	httpErr := requireHTTPError(t, BindAndValidate(c, &joinedPayload{}))

	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "when", Error: "must be a date"},
	}, httpErr.Errors)
}
