// Package snowflake defines the Snowflake engine spec.
package snowflake

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Spec is the Snowflake engine.
var Spec = engine.New("snowflake").
	EngineName("Snowflake").
	Limit(core.LimitForce).
	Grain("PT1S", "DATE_TRUNC('SECOND', {col})").
	Grain("PT1M", "DATE_TRUNC('MINUTE', {col})").
	Grain("PT5M", "DATEADD(MINUTE, FLOOR(DATE_PART(MINUTE, {col}) / 5) * 5, DATE_TRUNC('HOUR', {col}))").
	Grain("PT10M", "DATEADD(MINUTE, FLOOR(DATE_PART(MINUTE, {col}) / 10) * 10, DATE_TRUNC('HOUR', {col}))").
	Grain("PT15M", "DATEADD(MINUTE, FLOOR(DATE_PART(MINUTE, {col}) / 15) * 15, DATE_TRUNC('HOUR', {col}))").
	Grain("PT30M", "DATEADD(MINUTE, FLOOR(DATE_PART(MINUTE, {col}) / 30) * 30, DATE_TRUNC('HOUR', {col}))").
	Grain("PT1H", "DATE_TRUNC('HOUR', {col})").
	Grain("P1D", "DATE_TRUNC('DAY', {col})").
	Grain("P1W", "DATE_TRUNC('WEEK', {col})").
	Grain("P1M", "DATE_TRUNC('MONTH', {col})").
	Grain("P3M", "DATE_TRUNC('QUARTER', {col})").
	Grain("P1Y", "DATE_TRUNC('YEAR', {col})").
	ColumnType(`NUMBER`, core.GenericNumeric).
	ColumnType(`VARIANT`, core.GenericString).
	ColumnType(`OBJECT`, core.GenericString).
	ColumnType(`GEOGRAPHY`, core.GenericString).
	ColumnType(`TIMESTAMP_(NTZ|LTZ|TZ)`, core.GenericTemporal).
	StandardColumnTypes().
	ErrorRule(
		`Object does not exist, or operation cannot be performed`,
		`Either the database is spelled incorrectly or does not exist.`,
		core.ConnectionUnknownDatabaseError, nil,
	).
	ErrorRule(
		`Incorrect username or password was specified`,
		`Either the username or the password is incorrect.`,
		core.ConnectionAccessDeniedError, nil,
	).
	ErrorRule(
		`invalid identifier '(?P<column>.*?)'`,
		`We can't seem to resolve the column "{column}".`,
		core.ColumnDoesNotExistError, nil,
	).
	Epoch("TO_TIMESTAMP({col})", "TO_TIMESTAMP({col} / 1000)").
	URI("snowflake", 443).
	Build()

func init() {
	engine.Register(Spec)
}
