// Package validation binds incoming requests into payload types and checks
// them before any handler logic runs.
//
// Payloads declare their rules with go-playground/validator struct tags and
// expose them through Validatable. Failures are reported field by field so
// a client sees every problem with a request at once.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their wire names ("patient_id", "start_date")
	// instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" || name == "" {
				continue
			}
			return name
		}
		return fld.Name
	})

	// min/max on decimals compare the numeric value.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// Struct runs the shared validator against s.
func Struct(s any) error {
	return validate.Struct(s)
}
