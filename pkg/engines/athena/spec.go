// Package athena defines the AWS Athena engine spec.
//
// Athena speaks the Presto dialect but reports errors through a single
// SYNTAX_ERROR channel, so the translation rules key on Athena's own
// message shapes instead of Presto's.
package athena

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Spec is the AWS Athena engine.
var Spec = engine.New("awsathena").
	EngineName("Amazon Athena").
	Aliases("athena").
	Limit(core.LimitForce).
	Grain("PT1S", "DATE_TRUNC('second', CAST({col} AS TIMESTAMP))").
	Grain("PT1M", "DATE_TRUNC('minute', CAST({col} AS TIMESTAMP))").
	Grain("PT1H", "DATE_TRUNC('hour', CAST({col} AS TIMESTAMP))").
	Grain("P1D", "DATE_TRUNC('day', CAST({col} AS TIMESTAMP))").
	Grain("P1W", "DATE_TRUNC('week', CAST({col} AS TIMESTAMP))").
	Grain("P1M", "DATE_TRUNC('month', CAST({col} AS TIMESTAMP))").
	Grain("P3M", "DATE_TRUNC('quarter', CAST({col} AS TIMESTAMP))").
	Grain("P1Y", "DATE_TRUNC('year', CAST({col} AS TIMESTAMP))").
	StandardColumnTypes().
	ErrorRule(
		`SYNTAX_ERROR: line (?P<location>.+?): Column '(?P<column>.+?)' cannot be resolved`,
		`We can't seem to resolve the column "{column}" at line {location}.`,
		core.ColumnDoesNotExistError, nil,
	).
	ErrorRule(
		`SYNTAX_ERROR: line (?P<location>.+?): Table (?P<table>.+?) does not exist`,
		`The table "{table}" does not exist. A valid table must be used to run this query.`,
		core.TableDoesNotExistError, nil,
	).
	Epoch("from_unixtime({col})", "from_unixtime(CAST({col} AS DOUBLE) / 1000)").
	URI("awsathena", 443).
	Build()

func init() {
	engine.Register(Spec)
}
