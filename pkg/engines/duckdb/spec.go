// Package duckdb defines the DuckDB engine spec.
package duckdb

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Spec is the DuckDB engine.
var Spec = engine.New("duckdb").
	EngineName("DuckDB").
	Limit(core.LimitForce).
	Grain("PT1S", "DATE_TRUNC('second', {col})").
	Grain("PT1M", "DATE_TRUNC('minute', {col})").
	Grain("PT1H", "DATE_TRUNC('hour', {col})").
	Grain("P1D", "DATE_TRUNC('day', {col})").
	Grain("P1W", "DATE_TRUNC('week', {col})").
	Grain("P1M", "DATE_TRUNC('month', {col})").
	Grain("P3M", "DATE_TRUNC('quarter', {col})").
	Grain("P1Y", "DATE_TRUNC('year', {col})").
	ColumnType(`HUGEINT`, core.GenericNumeric).
	ColumnType(`UBIGINT`, core.GenericNumeric).
	ColumnType(`UINTEGER`, core.GenericNumeric).
	ColumnType(`USMALLINT`, core.GenericNumeric).
	ColumnType(`UTINYINT`, core.GenericNumeric).
	StandardColumnTypes().
	ErrorRule(
		`Referenced column "(?P<column>.*?)" not found`,
		`We can't seem to resolve the column "{column}".`,
		core.ColumnDoesNotExistError, nil,
	).
	ErrorRule(
		`Table with name (?P<table>.*?) does not exist`,
		`The table "{table}" does not exist. A valid table must be used to run this query.`,
		core.TableDoesNotExistError, nil,
	).
	Epoch("to_timestamp({col})", "to_timestamp({col} / 1000)").
	Drivers("duckdb").
	Build()

func init() {
	engine.Register(Spec)
}
