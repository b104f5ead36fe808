// Package core defines the shared value types used by the engine registry,
// the template renderer, and the virtual dataset executor: generic column
// type categories, time grains, limiting strategies, connection parameters,
// and the structured error taxonomy.
package core

// GenericType is the dialect-independent classification of a column type.
type GenericType int

// Generic type categories derived from native column types.
const (
	// GenericUnknown means no mapping rule matched the native type.
	GenericUnknown GenericType = iota
	GenericNumeric
	GenericString
	GenericTemporal
	GenericBoolean
)

// String returns the string representation of the generic type.
func (t GenericType) String() string {
	switch t {
	case GenericNumeric:
		return "NUMERIC"
	case GenericString:
		return "STRING"
	case GenericTemporal:
		return "TEMPORAL"
	case GenericBoolean:
		return "BOOLEAN"
	default:
		return "UNKNOWN"
	}
}

// TimeGrain describes one temporal bucketing unit offered by an engine.
// Expression contains a "{col}" placeholder substituted at query build time.
type TimeGrain struct {
	Name       string `json:"name"`     // machine name, e.g. "PT1M"
	Label      string `json:"label"`    // human label, e.g. "Minute"
	Expression string `json:"function"` // SQL template with {col} placeholder
	Duration   string `json:"duration"` // ISO-8601 duration, empty for the no-op grain
}

// ColumnSpec is the result of matching a native column type against an
// engine's type mapping table.
type ColumnSpec struct {
	NativeType string
	Generic    GenericType
	IsTemporal bool
}

// TemporalEncoding describes how a temporal column is physically stored.
type TemporalEncoding int

// Temporal column encodings.
const (
	EncodingPlain TemporalEncoding = iota
	EncodingEpochSeconds
	EncodingEpochMillis
)

// LimitMethod selects how an engine applies a row limit to a statement.
type LimitMethod int

const (
	// LimitForce rewrites or inserts a LIMIT clause in the statement text.
	LimitForce LimitMethod = iota
	// LimitWrap wraps the statement as a subquery and appends a LIMIT.
	// Used for engines where in-place LIMIT rewriting is unsafe.
	LimitWrap
	// LimitFetch leaves the SQL untouched; rows are capped at fetch time.
	LimitFetch
)

// String returns the string representation of the limit method.
func (m LimitMethod) String() string {
	switch m {
	case LimitForce:
		return "force"
	case LimitWrap:
		return "wrap"
	case LimitFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// ResultColumn describes one column of a normalized query result.
type ResultColumn struct {
	Name       string      `json:"name"`
	NativeType string      `json:"type"`
	Generic    GenericType `json:"generic_type"`
	IsTemporal bool        `json:"is_dttm"`
}

// QueryResult is the normalized output of a virtual dataset execution.
type QueryResult struct {
	QueryID string         `json:"query_id"`
	Columns []ResultColumn `json:"columns"`
	Rows    [][]any        `json:"data"`
}

// Parameters holds the structured connection parameters for engines that
// support building a connection URI from discrete fields.
type Parameters struct {
	Username   string            `json:"username"`
	Password   string            `json:"password"`
	Host       string            `json:"host"`
	Port       int               `json:"port"`
	Database   string            `json:"database"`
	Query      map[string]string `json:"query"`
	Encryption bool              `json:"encryption"`
}

// Filter is one ad-hoc filter applied by the caller, shaped {op, col, val}.
type Filter struct {
	Op  string `json:"op"`
	Col string `json:"col"`
	Val any    `json:"val"`
}
