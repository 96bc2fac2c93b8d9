package vitallog

import (
	"math/big"
	"testing"
	"time"

	"github.com/deppfellow/patient-records/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func temperature(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestCreateVitalLogPayload_Validate(t *testing.T) {
	t.Run("minimal payload", func(t *testing.T) {
		p := &CreateVitalLogPayload{PatientID: 3}
		require.NoError(t, p.Validate())
		assert.Nil(t, p.MeasuredAtTime())
	})

	t.Run("temperature bounds are inclusive", func(t *testing.T) {
		for _, v := range []string{"30.0", "36.6", "45.0"} {
			p := &CreateVitalLogPayload{PatientID: 3, BodyTemperature: temperature(v)}
			assert.NoError(t, p.Validate(), v)
		}
	})

	t.Run("temperature out of range", func(t *testing.T) {
		for _, v := range []string{"29.9", "45.1"} {
			p := &CreateVitalLogPayload{PatientID: 3, BodyTemperature: temperature(v)}

			var validationErrs validator.ValidationErrors
			require.ErrorAs(t, p.Validate(), &validationErrs, v)
			assert.Equal(t, "body_temperature", validationErrs[0].Field())
		}
	})

	t.Run("measured_at is parsed", func(t *testing.T) {
		measured := "2024-02-10 07:30:00"
		p := &CreateVitalLogPayload{PatientID: 3, MeasuredAt: &measured}
		require.NoError(t, p.Validate())

		require.NotNil(t, p.MeasuredAtTime())
		assert.Equal(t, time.Date(2024, 2, 10, 7, 30, 0, 0, time.UTC), *p.MeasuredAtTime())
	})

	t.Run("validation and parse errors are reported together", func(t *testing.T) {
		measured := "last tuesday"
		long := string(make([]rune, 201))
		p := &CreateVitalLogPayload{Description: &long, MeasuredAt: &measured}
		err := p.Validate()

		var validationErrs validator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Len(t, validationErrs, 2)

		var parseErr *model.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "measured_at", parseErr.Param)
	})
}

func TestFromRow(t *testing.T) {
	id := uuid.New()
	now := time.Date(2024, 2, 10, 7, 30, 0, 0, time.UTC)

	v, err := FromRow(model.Row{
		"id":               [16]byte(id),
		"patient_id":       int64(3),
		"body_temperature": pgtype.Numeric{Int: big.NewInt(375), Exp: -1, Valid: true},
		"description":      "fever",
		"created_at":       now,
		"measured_at":      now,
	})
	require.NoError(t, err)

	assert.Equal(t, id, v.ID)
	assert.Equal(t, "37.5", v.BodyTemperature.String())
	require.NotNil(t, v.Description)
	assert.Equal(t, "fever", *v.Description)
}

func TestFromRow_NullOptionals(t *testing.T) {
	now := time.Now()

	v, err := FromRow(model.Row{
		"id":               [16]byte(uuid.New()),
		"patient_id":       int64(3),
		"body_temperature": nil,
		"description":      nil,
		"created_at":       now,
		"measured_at":      now,
	})
	require.NoError(t, err)

	assert.Nil(t, v.BodyTemperature)
	assert.Nil(t, v.Description)
}
