// Package middleware holds the global and per-route middleware of the API:
// request ids, request-scoped logging, tracing, rate limiting, the per-request
// database session and the global error handler.
package middleware

import (
	"github.com/deppfellow/patient-records/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups every middleware component so the router receives them
// as one value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
	Session         *SessionMiddleware
}

// NewMiddlewares builds all middleware. Tracing degrades to a no-op when New
// Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		RateLimit:       NewRateLimitMiddleware(s),
		Session:         NewSessionMiddleware(s),
	}
}
