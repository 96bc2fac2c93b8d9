package handler

import (
	"reflect"
	"time"

	"github.com/deppfellow/patient-records/internal/middleware"
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/deppfellow/patient-records/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the dependencies shared by every concrete handler.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a bound and validated Req
// and returns the response body. Req is a pointer to a struct.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler writes a successful result and describes it for logs and
// traces.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes the result as JSON with a fixed status.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	// http.status_code is set by EnhanceTracing.
}

// handleRequest binds and validates req, runs handler wrapped in around and
// writes the result, logging and tracing each phase. around only sees
// requests that passed validation. Errors are returned untouched for the
// global error handler.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
	around []echo.MiddlewareFunc,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", c.Request().Method).
		Str("route", route).
		Logger()

	validationStart := time.Now()
	err := validation.BindAndValidate(c, req)
	validationDuration := time.Since(validationStart)
	tracePhase(txn, "validation", validationDuration, err)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")
		return err
	}

	var result interface{}
	invoke := func(c echo.Context) error {
		var err error
		result, err = handler(c, req)
		return err
	}
	for i := len(around) - 1; i >= 0; i-- {
		invoke = around[i](invoke)
	}

	handlerStart := time.Now()
	err = invoke(c)
	handlerDuration := time.Since(handlerStart)
	tracePhase(txn, "handler", handlerDuration, err)

	totalDuration := time.Since(start)
	if txn != nil {
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")
		return err
	}

	if txn != nil {
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Dur("handler_duration", handlerDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed")

	return responseHandler.Handle(c, result)
}

// tracePhase records the outcome and duration of one request phase on the
// New Relic transaction, noticing err when the phase failed.
func tracePhase(txn *newrelic.Transaction, phase string, elapsed time.Duration, err error) {
	if txn == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failed"
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}

	txn.AddAttribute(phase+".status", status)
	txn.AddAttribute(phase+".duration_ms", elapsed.Milliseconds())
}

// Handle registers a typed endpoint. prototype only fixes the request type:
// every call binds into a freshly allocated value, so concurrent requests
// never share state. around wraps the handler call alone, after validation.
//
//	r.POST("/add-patient", Handle(h.Handler, h.AddPatient, http.StatusOK, &patient.CreatePatientPayload{}, session))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	prototype Req,
	around ...echo.MiddlewareFunc,
) echo.HandlerFunc {
	reqType := reflect.TypeOf(prototype).Elem()

	return func(c echo.Context) error {
		req := reflect.New(reqType).Interface().(Req)

		return handleRequest(c, req, func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status}, around)
	}
}
