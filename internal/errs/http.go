package errs

import "strings"

// HTTPError is the JSON error body returned by every endpoint.
//
// Status is the HTTP status code; Code is its machine-readable counterpart
// (e.g. "BAD_REQUEST" or a domain code such as "PATIENT_NOT_FOUND").
// Override tells the global error handler the Message is safe to show
// verbatim. Errors lists per-field problems for validation failures.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError, regardless of its fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
