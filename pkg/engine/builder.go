package engine

import (
	"regexp"
	"strings"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/sqlparse"
)

// Builder provides a fluent API for constructing engine specs.
// Declarative tables are appended in order; ordering is part of the
// contract for type rules and error rules.
type Builder struct {
	spec *Spec
}

// New creates a builder for an engine with the given canonical name.
func New(name string) *Builder {
	return &Builder{
		spec: &Spec{
			name:        strings.ToLower(name),
			engineName:  name,
			limitMethod: core.LimitForce,
			grainIndex:  make(map[string]string),
		},
	}
}

// EngineName sets the human-readable engine name.
func (b *Builder) EngineName(s string) *Builder {
	b.spec.engineName = s
	return b
}

// Aliases adds alternative names the engine resolves under.
func (b *Builder) Aliases(names ...string) *Builder {
	b.spec.aliases = append(b.spec.aliases, names...)
	return b
}

// Limit sets the row-limiting strategy.
func (b *Builder) Limit(m core.LimitMethod) *Builder {
	b.spec.limitMethod = m
	return b
}

// Grain adds a time-grain expression. expr contains a {col} placeholder.
func (b *Builder) Grain(grain, expr string) *Builder {
	b.spec.grains = append(b.spec.grains, GrainExpr{Grain: grain, Expr: expr})
	return b
}

// ColumnType appends a native-type mapping rule. The pattern is compiled
// case-insensitively and anchored at the start of the type string.
func (b *Builder) ColumnType(pattern string, g core.GenericType) *Builder {
	re := regexp.MustCompile(`(?i)^` + pattern)
	b.spec.typeRules = append(b.spec.typeRules, TypeRule{Pattern: re, Generic: g})
	return b
}

// StandardColumnTypes appends the shared ANSI-ish type mapping table.
// Engines add their own narrower rules before calling this.
func (b *Builder) StandardColumnTypes() *Builder {
	for _, r := range standardTypeRules {
		b.ColumnType(r.pattern, r.generic)
	}
	return b
}

// ErrorRule appends a driver-error translation rule. message may reference
// named regex groups and extract-context keys as {name} placeholders.
func (b *Builder) ErrorRule(pattern, message string, t core.ErrorType, extra map[string]any) *Builder {
	b.spec.errorRules = append(b.spec.errorRules, ErrorRule{
		Pattern: regexp.MustCompile(pattern),
		Message: message,
		Type:    t,
		Extra:   extra,
	})
	return b
}

// Epoch sets the templates converting epoch-second and epoch-millisecond
// columns to timestamps. Either may be empty if unsupported.
func (b *Builder) Epoch(seconds, millis string) *Builder {
	b.spec.epochSeconds = seconds
	b.spec.epochMillis = millis
	return b
}

// URI enables structured connection parameters with the given scheme and
// conventional port.
func (b *Builder) URI(scheme string, defaultPort int) *Builder {
	b.spec.uriScheme = scheme
	b.spec.defaultPort = defaultPort
	return b
}

// EncryptionParams sets the query parameters that encode "use TLS" in a
// connection URI. Their presence drives the Encryption flag round trip.
func (b *Builder) EncryptionParams(params map[string]string) *Builder {
	b.spec.encryptionParams = params
	return b
}

// Drivers declares the database/sql driver names the engine can run on.
func (b *Builder) Drivers(names ...string) *Builder {
	b.spec.driverNames = append(b.spec.driverNames, names...)
	return b
}

// Macro registers an engine-scoped template macro.
func (b *Builder) Macro(name string, fn MacroFunc) *Builder {
	if b.spec.macros == nil {
		b.spec.macros = make(map[string]MacroFunc)
	}
	b.spec.macros[name] = fn
	return b
}

// TimestampFunc installs a grain-to-SQL translation override.
func (b *Builder) TimestampFunc(fn TimestampFunc) *Builder {
	b.spec.timestampFn = fn
	return b
}

// ReadOnly overrides the read-only statement classification.
func (b *Builder) ReadOnly(fn func(*sqlparse.Statement) bool) *Builder {
	b.spec.readOnlyFn = fn
	return b
}

// CancelFunc installs best-effort query cancellation.
func (b *Builder) CancelFunc(fn CancelFunc) *Builder {
	b.spec.cancelFn = fn
	return b
}

// Build finalizes the spec. The no-op grain ("" -> "{col}") is guaranteed
// present, and the grain index is frozen.
func (b *Builder) Build() *Spec {
	s := b.spec
	hasNoop := false
	for _, g := range s.grains {
		if g.Grain == "" {
			hasNoop = true
			break
		}
	}
	if !hasNoop {
		s.grains = append([]GrainExpr{{Grain: "", Expr: "{col}"}}, s.grains...)
	}
	for _, g := range s.grains {
		s.grainIndex[g.Grain] = g.Expr
	}
	return s
}

// standardTypeRules is the shared type table appended by
// StandardColumnTypes. Narrow patterns precede broad ones: BIGINT must come
// before INT or bigint columns get misclassified.
var standardTypeRules = []struct {
	pattern string
	generic core.GenericType
}{
	{`BOOL(EAN)?`, core.GenericBoolean},
	{`TINYINT`, core.GenericNumeric},
	{`SMALLINT`, core.GenericNumeric},
	{`MEDIUMINT`, core.GenericNumeric},
	{`BIGINT`, core.GenericNumeric},
	{`INT(EGER)?`, core.GenericNumeric},
	{`DECIMAL`, core.GenericNumeric},
	{`NUMERIC`, core.GenericNumeric},
	{`REAL`, core.GenericNumeric},
	{`DOUBLE( PRECISION)?`, core.GenericNumeric},
	{`FLOAT`, core.GenericNumeric},
	{`MONEY`, core.GenericNumeric},
	{`TIMESTAMP`, core.GenericTemporal},
	{`DATETIME`, core.GenericTemporal},
	{`DATE`, core.GenericTemporal},
	{`TIME`, core.GenericTemporal},
	{`INTERVAL`, core.GenericTemporal},
	{`N?VARCHAR`, core.GenericString},
	{`N?CHAR`, core.GenericString},
	{`(TINY|MEDIUM|LONG)?TEXT`, core.GenericString},
	{`CLOB`, core.GenericString},
	{`JSONB?`, core.GenericString},
	{`UUID`, core.GenericString},
	{`STRING`, core.GenericString},
}
