// Package sqlite defines the SQLite engine spec. SQLite is file-based, so
// the engine has no structured connection parameters.
package sqlite

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Spec is the SQLite engine.
var Spec = engine.New("sqlite").
	EngineName("SQLite").
	Limit(core.LimitForce).
	Grain("PT1S", "DATETIME(STRFTIME('%Y-%m-%dT%H:%M:%S', {col}))").
	Grain("PT1M", "DATETIME(STRFTIME('%Y-%m-%dT%H:%M:00', {col}))").
	Grain("PT1H", "DATETIME(STRFTIME('%Y-%m-%dT%H:00:00', {col}))").
	Grain("P1D", "DATE({col})").
	Grain("P1W", "DATE({col}, -STRFTIME('%w', {col}) || ' days')").
	Grain("P1M", "DATE({col}, 'start of month')").
	Grain("P3M", "DATETIME(STRFTIME('%Y-', {col}) || ((PRINTF('%02d', ((STRFTIME('%m', {col}) - 1) / 3) * 3 + 1))) || '-01T00:00:00', 'start of day')").
	Grain("P1Y", "DATE({col}, 'start of year')").
	StandardColumnTypes().
	ErrorRule(
		`no such column: (?P<column>.+)`,
		`We can't seem to resolve the column "{column}".`,
		core.ColumnDoesNotExistError, nil,
	).
	ErrorRule(
		`no such table: (?P<table>.+)`,
		`The table "{table}" does not exist. A valid table must be used to run this query.`,
		core.TableDoesNotExistError, nil,
	).
	Epoch("datetime({col}, 'unixepoch')", "datetime({col} / 1000, 'unixepoch')").
	Drivers("sqlite", "sqlite3").
	Build()

func init() {
	engine.Register(Spec)
}
