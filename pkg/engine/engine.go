// Package engine provides the per-backend SQL engine specification and its
// registry. A Spec centralizes everything that differs between database
// products (time-grain expressions, column type mapping, limit strategy,
// driver error translation, connection parameter handling) behind one
// uniform contract, so calling code never branches on backend name.
//
// Specs are declarative configuration built once via the fluent Builder,
// registered from pkg/engines/*/ packages in their init() functions, and
// treated as immutable afterwards. They are safe for concurrent use.
package engine

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/sqlparse"
)

// MacroFunc is a template macro exposed by an engine under its own
// namespace (e.g. trino.latest_partition). Arguments and results are
// restricted to the template context's allowlisted types.
type MacroFunc func(args ...any) (any, error)

// GrainExpr pairs a time-grain token with its SQL expression template.
// The template contains a "{col}" placeholder.
type GrainExpr struct {
	Grain string
	Expr  string
}

// TypeRule maps a native column type pattern to a generic category.
// Rules are matched in declaration order; first match wins, so narrower
// patterns (BIGINT) must precede broader ones (INT.*).
type TypeRule struct {
	Pattern *regexp.Regexp
	Generic core.GenericType
}

// ErrorRule translates a native driver error into a categorized message.
// Rules are kept in a slice, not a map: first-match-wins semantics depend
// on declaration order being preserved.
type ErrorRule struct {
	Pattern *regexp.Regexp
	Message string // template with {name} placeholders for regex groups and context
	Type    core.ErrorType
	Extra   map[string]any
}

// TimestampFunc overrides grain-to-SQL translation for engines whose grain
// handling is not expressible as a substitution table (e.g. Druid's
// TIME_FLOOR taking the ISO duration directly). col arrives already
// epoch-converted.
type TimestampFunc func(s *Spec, col, grain string) (string, error)

// CancelFunc implements best-effort query cancellation for engines that
// support it.
type CancelFunc func(ctx context.Context, db *sql.DB, queryID string) error

// ErrCancelUnsupported is returned by CancelQuery when the engine has no
// cancellation support.
var ErrCancelUnsupported = errors.New("engine does not support query cancellation")

// Spec is one engine specification. All fields are set by the Builder and
// never mutated afterwards; a Spec may be shared freely across goroutines.
type Spec struct {
	name        string
	engineName  string
	aliases     []string
	limitMethod core.LimitMethod

	grains     []GrainExpr
	grainIndex map[string]string

	typeRules  []TypeRule
	errorRules []ErrorRule

	epochSeconds string
	epochMillis  string

	uriScheme        string
	defaultPort      int
	encryptionParams map[string]string
	driverNames      []string

	macros      map[string]MacroFunc
	timestampFn TimestampFunc
	readOnlyFn  func(*sqlparse.Statement) bool
	cancelFn    CancelFunc
}

// Name returns the canonical engine name, e.g. "mysql".
func (s *Spec) Name() string { return s.name }

// EngineName returns the human-readable engine name, e.g. "MySQL".
func (s *Spec) EngineName() string { return s.engineName }

// Aliases returns the alternative names this engine resolves under.
func (s *Spec) Aliases() []string { return s.aliases }

// LimitMethod returns the engine's row-limiting strategy.
func (s *Spec) LimitMethod() core.LimitMethod { return s.limitMethod }

// DriverNames returns the database/sql driver names this engine can use.
func (s *Spec) DriverNames() []string { return s.driverNames }

// DefaultPort returns the engine's conventional port, or 0.
func (s *Spec) DefaultPort() int { return s.defaultPort }

// Macros returns the engine's template macro namespace, or nil.
func (s *Spec) Macros() map[string]MacroFunc { return s.macros }

// IsReadOnly reports whether the statement is allowed through the virtual
// dataset gate: SELECT, EXPLAIN or SHOW by default, overridable per engine.
func (s *Spec) IsReadOnly(stmt *sqlparse.Statement) bool {
	if s.readOnlyFn != nil {
		return s.readOnlyFn(stmt)
	}
	return stmt.IsSelect() || stmt.IsExplain() || stmt.IsShow()
}

// CancelQuery asks the backend to abort the query identified by queryID.
// Best effort; engines without cancel support return ErrCancelUnsupported.
func (s *Spec) CancelQuery(ctx context.Context, db *sql.DB, queryID string) error {
	if s.cancelFn == nil {
		return ErrCancelUnsupported
	}
	return s.cancelFn(ctx, db, queryID)
}
