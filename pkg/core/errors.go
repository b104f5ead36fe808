package core

import "fmt"

// ErrorType categorizes a structured error. The values are stable wire
// identifiers consumed by callers to pick messages and remediation links.
type ErrorType string

// Error categories. The set is representative, not closed: engines may map
// driver errors to any of these, and unmatched driver errors fall back to
// GenericDBEngineError.
const (
	// Backend/engine errors.
	GenericDBEngineError    ErrorType = "GENERIC_DB_ENGINE_ERROR"
	ColumnDoesNotExistError ErrorType = "COLUMN_DOES_NOT_EXIST_ERROR"
	TableDoesNotExistError  ErrorType = "TABLE_DOES_NOT_EXIST_ERROR"
	SchemaDoesNotExistError ErrorType = "SCHEMA_DOES_NOT_EXIST_ERROR"

	// Connection errors.
	ConnectionInvalidUsernameError   ErrorType = "CONNECTION_INVALID_USERNAME_ERROR"
	ConnectionInvalidPasswordError   ErrorType = "CONNECTION_INVALID_PASSWORD_ERROR"
	ConnectionInvalidHostnameError   ErrorType = "CONNECTION_INVALID_HOSTNAME_ERROR"
	ConnectionInvalidPortError       ErrorType = "CONNECTION_INVALID_PORT_ERROR"
	ConnectionPortClosedError        ErrorType = "CONNECTION_PORT_CLOSED_ERROR"
	ConnectionHostDownError          ErrorType = "CONNECTION_HOST_DOWN_ERROR"
	ConnectionAccessDeniedError      ErrorType = "CONNECTION_ACCESS_DENIED_ERROR"
	ConnectionUnknownDatabaseError   ErrorType = "CONNECTION_UNKNOWN_DATABASE_ERROR"
	ConnectionMissingParametersError ErrorType = "CONNECTION_MISSING_PARAMETERS_ERROR"

	// Templating errors.
	MissingTemplateParametersError ErrorType = "MISSING_TEMPLATE_PARAMETERS_ERROR"
	TemplateSecurityError          ErrorType = "TEMPLATE_SECURITY_ERROR"

	// Query validation errors (security gate).
	MultiStatementQueryError ErrorType = "MULTI_STATEMENT_QUERY_ERROR"
	DMLNotAllowedError       ErrorType = "DML_NOT_ALLOWED_ERROR"
	EmptyQueryError          ErrorType = "EMPTY_QUERY_ERROR"

	// Generic caller-facing errors.
	GenericCommandError       ErrorType = "GENERIC_COMMAND_ERROR"
	InvalidPayloadFormatError ErrorType = "INVALID_PAYLOAD_FORMAT_ERROR"
	InvalidPayloadSchemaError ErrorType = "INVALID_PAYLOAD_SCHEMA_ERROR"
)

// Error is a structured, categorized error suitable for rendering to an end
// user. Issue codes are attached automatically at construction; after that
// the value is treated as immutable.
type Error struct {
	Message string         `json:"message"`
	Type    ErrorType      `json:"error_type"`
	Level   Severity       `json:"level"`
	Extra   map[string]any `json:"extra,omitempty"`
}

// NewError builds a structured error and attaches the issue codes registered
// for its type. Callers never attach issue codes themselves.
func NewError(t ErrorType, message string, level Severity, extra map[string]any) *Error {
	e := &Error{
		Message: message,
		Type:    t,
		Level:   level,
		Extra:   extra,
	}
	if codes := IssueCodes(t); len(codes) > 0 {
		if e.Extra == nil {
			e.Extra = make(map[string]any, 1)
		}
		e.Extra["issue_codes"] = codes
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}
