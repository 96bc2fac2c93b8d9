package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/patient-records/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ConvertPgError normalizes a raw PostgreSQL error.
func ConvertPgError(src *pgconn.PgError) *Error {
	code := MapCode(src.Code)

	columnName := src.ColumnName
	if columnName == "" && code == ForeignKeyViolation {
		columnName = extractColumnForForeignKey(src.TableName, src.ConstraintName)
	}

	return &Error{
		Code:           code,
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     columnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// notFoundCode builds codes like PATIENT_NOT_FOUND or VITAL_LOG_NOT_FOUND.
func notFoundCode(tableName string) string {
	domain := "RECORD"
	if tableName != "" {
		domain = strings.ToUpper(singular(tableName))
	}
	return domain + "_NOT_FOUND"
}

// getEntityName prefers the "<entity>_id" column of a foreign key, then the
// singularized table name.
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		return humanizeText(singular(tableName))
	}

	return "record"
}

// singular drops the plural "s" of a table name: "vital_logs" -> "vital_log".
func singular(tableName string) string {
	if len(tableName) > 1 {
		return strings.TrimSuffix(tableName, "s")
	}
	return tableName
}

// humanizeText turns "body_temperature" into "Body Temperature".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForForeignKey understands PostgreSQL's default
// "<table>_<column>_fkey" constraint names.
func extractColumnForForeignKey(tableName, constraintName string) string {
	if tableName == "" || !strings.HasSuffix(constraintName, "_fkey") {
		return ""
	}

	prefix := tableName + "_"
	if !strings.HasPrefix(constraintName, prefix) {
		return ""
	}

	return strings.TrimSuffix(strings.TrimPrefix(constraintName, prefix), "_fkey")
}

// HandleError converts a repository error into an *errs.HTTPError.
//
//   - *errs.HTTPError passes through untouched.
//   - a foreign key naming a missing record becomes a 400 with a domain code.
//   - connection failures and canceled statements become a 503.
//   - pgx.ErrNoRows becomes a 404; a "table:<name>:" marker in the wrapped
//     message names the missing entity.
//   - everything else, other constraint violations included, is a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return foreignKeyError(sqlErr)

		case ConnectionFailure, QueryCanceled:
			return errs.NewServiceUnavailableError("Database unavailable")

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		if table := missingTable(err); table != "" {
			errorCode := notFoundCode(table)
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", getEntityName(table, "")), true, &errorCode)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

// foreignKeyError reports a reference to a record that does not exist, named
// after the referenced entity when the constraint follows the default naming.
func foreignKeyError(sqlErr *Error) *errs.HTTPError {
	errorCode := notFoundCode(sqlErr.TableName)
	message := fmt.Sprintf("The referenced %s does not exist", getEntityName(sqlErr.TableName, sqlErr.ColumnName))

	var fieldErrors []errs.FieldError
	if sqlErr.ColumnName != "" {
		column := strings.ToLower(sqlErr.ColumnName)
		if strings.HasSuffix(column, "_id") {
			errorCode = notFoundCode(strings.TrimSuffix(column, "_id"))
		}
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: column,
			Error: "does not reference an existing record",
		})
	}

	return errs.NewBadRequestError(message, true, &errorCode, fieldErrors, nil)
}

// missingTable reads the "table:<name>:" marker repositories put in the
// message of a wrapped pgx.ErrNoRows.
func missingTable(err error) string {
	_, rest, found := strings.Cut(err.Error(), "table:")
	if !found {
		return ""
	}
	table, _, _ := strings.Cut(rest, ":")
	return table
}
