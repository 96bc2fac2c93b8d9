package model

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Row is a result row keyed by column name, as produced by pgx.RowToMap.
type Row = map[string]any

// RowReader reads typed values out of a Row, collecting every missing or
// mistyped column so Err can report them together.
type RowReader struct {
	entity string
	row    Row
	bad    map[string]string
}

func NewRowReader(entity string, row Row) *RowReader {
	return &RowReader{entity: entity, row: row}
}

func (r *RowReader) fail(column, reason string) {
	if r.bad == nil {
		r.bad = make(map[string]string)
	}
	r.bad[column] = reason
}

func (r *RowReader) value(column string, nullable bool) (any, bool) {
	v, ok := r.row[column]
	if !ok {
		r.fail(column, "missing")
		return nil, false
	}
	if v == nil {
		if !nullable {
			r.fail(column, "unexpected null")
		}
		return nil, false
	}
	return v, true
}

func (r *RowReader) mistyped(column string, v any) {
	r.fail(column, fmt.Sprintf("unexpected type %T", v))
}

func (r *RowReader) Int64(column string) int64 {
	v, ok := r.value(column, false)
	if !ok {
		return 0
	}

	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int:
		return int64(n)
	default:
		r.mistyped(column, v)
		return 0
	}
}

func (r *RowReader) Int(column string) int {
	return int(r.Int64(column))
}

func (r *RowReader) String(column string) string {
	v, ok := r.value(column, false)
	if !ok {
		return ""
	}

	s, isString := v.(string)
	if !isString {
		r.mistyped(column, v)
	}
	return s
}

func (r *RowReader) OptionalString(column string) *string {
	v, ok := r.value(column, true)
	if !ok {
		return nil
	}

	s, isString := v.(string)
	if !isString {
		r.mistyped(column, v)
		return nil
	}
	return &s
}

func (r *RowReader) Time(column string) time.Time {
	v, ok := r.value(column, false)
	if !ok {
		return time.Time{}
	}

	switch t := v.(type) {
	case time.Time:
		return t
	case pgtype.Timestamptz:
		if t.Valid {
			return t.Time
		}
	}

	r.mistyped(column, v)
	return time.Time{}
}

func (r *RowReader) UUID(column string) uuid.UUID {
	v, ok := r.value(column, false)
	if !ok {
		return uuid.Nil
	}

	switch id := v.(type) {
	case [16]byte:
		return uuid.UUID(id)
	case uuid.UUID:
		return id
	case pgtype.UUID:
		if id.Valid {
			return uuid.UUID(id.Bytes)
		}
	case string:
		if parsed, err := uuid.Parse(id); err == nil {
			return parsed
		}
	}

	r.mistyped(column, v)
	return uuid.Nil
}

// OptionalDecimal reads a NUMERIC column; NULL maps to nil.
func (r *RowReader) OptionalDecimal(column string) *decimal.Decimal {
	v, ok := r.value(column, true)
	if !ok {
		return nil
	}

	switch n := v.(type) {
	case pgtype.Numeric:
		if !n.Valid {
			return nil
		}
		if n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
			r.fail(column, "not a finite number")
			return nil
		}
		d := decimal.NewFromBigInt(new(big.Int).Set(n.Int), n.Exp)
		return &d
	case decimal.Decimal:
		return &n
	case float64:
		d := decimal.NewFromFloat(n)
		return &d
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			r.fail(column, "not a decimal")
			return nil
		}
		return &d
	}

	r.mistyped(column, v)
	return nil
}

// Err returns a *MappingError listing every column that failed, or nil.
func (r *RowReader) Err() error {
	if len(r.bad) == 0 {
		return nil
	}
	return &MappingError{Entity: r.entity, Columns: r.bad}
}
