// Package errs defines the error shapes the API sends back to clients.
//
// Every failed request ends up serialized as an HTTPError, optionally
// carrying one FieldError per offending request field, so clients can
// rely on a single, stable error body.
package errs

// FieldError describes a single invalid request field.
//
//	{ "field": "age", "error": "must be at least 0" }
type FieldError struct {
	// Field is the request-facing name of the field (JSON key, query or path parameter).
	Field string `json:"field"`

	// Error is the human-readable reason the value was rejected.
	Error string `json:"error"`
}

// ActionType enumerates follow-up actions a client may be asked to perform.
type ActionType string

const (
	ActionTypeRedirect ActionType = "redirect"
	ActionTypeRetry    ActionType = "retry"
)

// Action is an optional hint attached to an error telling the client what to do next.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}
