package core

// IssueCode cross-references an error category to longer troubleshooting
// documentation via a stable numeric identifier.
type IssueCode struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Issue code identifiers. The numbers are stable and must not be reused.
const (
	IssueBackendError       = 1002 // database returned an unexpected error
	IssueColumnMissing      = 1004 // column was deleted or renamed
	IssueTableMissing       = 1005 // table was deleted or renamed
	IssueSchemaMissing      = 1016 // schema was deleted or renamed
	IssueInvalidHostname    = 1007 // hostname cannot be resolved
	IssuePortClosed         = 1008 // port is closed
	IssueHostUnreachable    = 1009 // host may be down or unreachable
	IssueInvalidUsername    = 1012 // username is invalid
	IssueInvalidPassword    = 1013 // password is invalid
	IssueAccessDenied       = 1014 // access was denied
	IssueUnknownDatabase    = 1015 // database does not exist
	IssueMissingParameters  = 1018 // required connection parameters are missing
	IssueInvalidPort        = 1021 // port is out of range
	IssueMissingTemplateVal = 1006 // a template parameter has no bound value
	IssueUnsafeTemplate     = 1022 // template context failed the security check
	IssueViolatesSQLPolicy  = 1023 // statement violates the read-only policy
)

var issueMessages = map[int]string{
	IssueBackendError:       "The database returned an unexpected error.",
	IssueColumnMissing:      "The column was deleted or renamed in the database.",
	IssueTableMissing:       "The table was deleted or renamed in the database.",
	IssueSchemaMissing:      "The schema was deleted or renamed in the database.",
	IssueInvalidHostname:    "The hostname provided can't be resolved.",
	IssuePortClosed:         "The port is closed.",
	IssueHostUnreachable:    "The host might be down, and can't be reached on the provided port.",
	IssueInvalidUsername:    "The username provided when connecting to a database is not valid.",
	IssueInvalidPassword:    "The password provided when connecting to a database is not valid.",
	IssueAccessDenied:       "Either the username or the password is wrong.",
	IssueUnknownDatabase:    "Either the database is spelled incorrectly or does not exist.",
	IssueMissingParameters:  "One or more parameters needed to configure a database are missing.",
	IssueInvalidPort:        "The port must be an integer between 0 and 65535 (inclusive).",
	IssueMissingTemplateVal: "The query contains one or more template parameters that have no value.",
	IssueUnsafeTemplate:     "The template context contained a value of a disallowed type.",
	IssueViolatesSQLPolicy:  "Only SELECT, EXPLAIN and SHOW statements are allowed here.",
}

// issueIndex maps an error category to its issue codes. Attachment happens
// inside NewError; this table is read-only after process start.
var issueIndex = map[ErrorType][]int{
	GenericDBEngineError:             {IssueBackendError},
	ColumnDoesNotExistError:          {IssueColumnMissing},
	TableDoesNotExistError:           {IssueTableMissing},
	SchemaDoesNotExistError:          {IssueSchemaMissing},
	ConnectionInvalidHostnameError:   {IssueInvalidHostname},
	ConnectionInvalidPortError:       {IssueInvalidPort},
	ConnectionPortClosedError:        {IssuePortClosed, IssueHostUnreachable},
	ConnectionHostDownError:          {IssueHostUnreachable},
	ConnectionInvalidUsernameError:   {IssueInvalidUsername},
	ConnectionInvalidPasswordError:   {IssueInvalidPassword},
	ConnectionAccessDeniedError:      {IssueInvalidUsername, IssueInvalidPassword, IssueAccessDenied},
	ConnectionUnknownDatabaseError:   {IssueUnknownDatabase},
	ConnectionMissingParametersError: {IssueMissingParameters},
	MissingTemplateParametersError:   {IssueMissingTemplateVal},
	TemplateSecurityError:            {IssueUnsafeTemplate},
	MultiStatementQueryError:         {IssueViolatesSQLPolicy},
	DMLNotAllowedError:               {IssueViolatesSQLPolicy},
	EmptyQueryError:                  {IssueViolatesSQLPolicy},
}

// IssueCodes returns the issue codes registered for an error category,
// or nil when the category has none.
func IssueCodes(t ErrorType) []IssueCode {
	ids, ok := issueIndex[t]
	if !ok {
		return nil
	}
	codes := make([]IssueCode, 0, len(ids))
	for _, id := range ids {
		codes = append(codes, IssueCode{Code: id, Message: issueMessages[id]})
	}
	return codes
}
