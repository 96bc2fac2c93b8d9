package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/patient-records/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by every request payload.
type Validatable interface {
	Validate() error
}

// FieldErrorReporter is implemented by errors that already know which request
// fields they concern, such as date parsing failures.
type FieldErrorReporter interface {
	FieldErrors() []errs.FieldError
}

// BindAndValidate fills payload from the path, query and body of the request
// and validates it. Any failure is returned as a 400 *errs.HTTPError listing
// every offending field.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		fieldErrors := extractValidationError(err)
		if len(fieldErrors) == 0 {
			return errs.ValidationError(err)
		}
		return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
	}

	return nil
}

// bindError turns echo's binder failures into field-level errors where the
// offending field can be recovered.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return errs.NewBadRequestError("Validation failed", true, nil, []errs.FieldError{{
			Field: field,
			Error: fmt.Sprintf("must be of type %s", jsonTypeName(typeErr.Type)),
		}}, nil)
	}

	var reporter FieldErrorReporter
	if errors.As(err, &reporter) {
		return errs.NewBadRequestError("Validation failed", true, nil, reporter.FieldErrors(), nil)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return errs.NewBadRequestError(
			fmt.Sprintf("Malformed JSON body at offset %d", syntaxErr.Offset), true, nil, nil, nil)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		message := http.StatusText(echoErr.Code)
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		}
		if echoErr.Code == http.StatusUnsupportedMediaType {
			return echoErr
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	return errs.NewBadRequestError("Invalid request", false, nil, nil, nil)
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return t.String()
	}
}

// extractValidationError flattens err into field errors. It understands
// validator.ValidationErrors, FieldErrorReporter and errors joined with
// errors.Join.
func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			fieldErrors = append(fieldErrors, extractValidationError(e)...)
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: strings.ToLower(fe.Field()),
				Error: fieldErrorMessage(fe),
			})
		}
		return fieldErrors
	}

	var reporter FieldErrorReporter
	if errors.As(err, &reporter) {
		return reporter.FieldErrors()
	}

	return nil
}

func fieldErrorMessage(fe validator.FieldError) string {
	isString := fe.Type() != nil && fe.Type().Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())

	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "uuid", "uuid4":
		return "must be a valid UUID"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}
