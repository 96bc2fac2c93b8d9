// Package model holds the request and response shapes of the API, one
// sub-package per resource, plus the helpers they share: date-time parsing
// and mapping database rows into read models.
package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/deppfellow/patient-records/internal/errs"
)

// MessageResponse is the body of endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// timestampLayouts are tried in order by ParseTimestamp. Layouts without a
// zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// ParseError reports a request value that is not a recognizable date-time.
type ParseError struct {
	Param string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q as a date-time", e.Param, e.Value)
}

func (e *ParseError) FieldErrors() []errs.FieldError {
	return []errs.FieldError{{
		Field: e.Param,
		Error: "must be a date (YYYY-MM-DD) or date-time (RFC 3339)",
	}}
}

// decodedOffset matches a positive zone offset whose "+" was turned into a
// space by query string decoding, as in "2024-03-01T10:20:30 09:00".
var decodedOffset = regexp.MustCompile(`(\d{2}:\d{2}(?::\d{2}(?:\.\d+)?)?) (\d{2}:\d{2})$`)

// ParseTimestamp parses value for the request parameter param. A trailing
// " hh:mm" is read as the "+hh:mm" offset it was before URL decoding.
func ParseTimestamp(param, value string) (time.Time, error) {
	trimmed := decodedOffset.ReplaceAllString(strings.TrimSpace(value), "$1+$2")
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Param: param, Value: value}
}

// MappingError reports a database row that could not be turned into a read
// model: a column was missing or held a value of an unexpected type.
type MappingError struct {
	Entity  string
	Columns map[string]string
}

func (e *MappingError) Error() string {
	names := make([]string, 0, len(e.Columns))
	for column := range e.Columns {
		names = append(names, column)
	}
	sort.Strings(names)

	problems := make([]string, 0, len(names))
	for _, column := range names {
		problems = append(problems, fmt.Sprintf("%s (%s)", column, e.Columns[column]))
	}

	return fmt.Sprintf("cannot map %s row: %s", e.Entity, strings.Join(problems, ", "))
}
