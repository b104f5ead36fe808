// Package gsheets defines the Google Sheets engine spec.
//
// The Sheets query layer only understands plain SELECT, so EXPLAIN and
// SHOW are not read-only here, they are unparseable.
package gsheets

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
	"github.com/rabbitai/sqlkit/pkg/sqlparse"
)

// Spec is the Google Sheets engine.
var Spec = engine.New("gsheets").
	EngineName("Google Sheets").
	Aliases("googlesheets").
	Limit(core.LimitWrap).
	Grain("PT1S", "DATETIME({col}, 'start of second')").
	Grain("PT1M", "DATETIME({col}, 'start of minute')").
	Grain("PT1H", "DATETIME({col}, 'start of hour')").
	Grain("P1D", "DATE({col})").
	Grain("P1W", "DATE({col}, 'weekday 0', '-6 days')").
	Grain("P1M", "DATE({col}, 'start of month')").
	Grain("P1Y", "DATE({col}, 'start of year')").
	StandardColumnTypes().
	ErrorRule(
		`Unsupported table: (?P<table>.*)`,
		`The URL could not be identified: "{table}". Please check that the sheet is shared.`,
		core.TableDoesNotExistError, nil,
	).
	ReadOnly(func(stmt *sqlparse.Statement) bool {
		return stmt.IsSelect()
	}).
	Build()

func init() {
	engine.Register(Spec)
}
