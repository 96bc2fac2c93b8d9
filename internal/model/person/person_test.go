package person

import (
	"testing"

	"github.com/deppfellow/patient-records/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestAddPersonPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload AddPersonPayload
		wantErr bool
	}{
		{name: "valid", payload: AddPersonPayload{Name: "Alice", Age: intPtr(30)}},
		{name: "age zero", payload: AddPersonPayload{Name: "Alice", Age: intPtr(0)}},
		{name: "age upper bound", payload: AddPersonPayload{Name: "Alice", Age: intPtr(150)}},
		{name: "missing name", payload: AddPersonPayload{Age: intPtr(30)}, wantErr: true},
		{name: "missing age", payload: AddPersonPayload{Name: "Alice"}, wantErr: true},
		{name: "too old", payload: AddPersonPayload{Name: "Alice", Age: intPtr(151)}, wantErr: true},
		{name: "negative age", payload: AddPersonPayload{Name: "Alice", Age: intPtr(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromRow(t *testing.T) {
	p, err := FromRow(model.Row{"id": int64(4), "name": "Dana", "age": int32(44)})
	require.NoError(t, err)
	assert.Equal(t, Person{ID: 4, Name: "Dana", Age: 44}, p)

	_, err = FromRow(model.Row{"id": int64(4), "name": nil, "age": "old"})
	var mappingErr *model.MappingError
	require.ErrorAs(t, err, &mappingErr)
	assert.Contains(t, mappingErr.Columns, "name")
	assert.Contains(t, mappingErr.Columns, "age")
}
