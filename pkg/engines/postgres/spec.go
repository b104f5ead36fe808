// Package postgres defines the PostgreSQL engine spec.
package postgres

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Spec is the PostgreSQL engine.
var Spec = engine.New("postgresql").
	EngineName("PostgreSQL").
	Aliases("postgres", "pgsql").
	Limit(core.LimitForce).
	Grain("PT1S", "DATE_TRUNC('second', {col})").
	Grain("PT1M", "DATE_TRUNC('minute', {col})").
	Grain("PT1H", "DATE_TRUNC('hour', {col})").
	Grain("P1D", "DATE_TRUNC('day', {col})").
	Grain("P1W", "DATE_TRUNC('week', {col})").
	Grain("P1M", "DATE_TRUNC('month', {col})").
	Grain("P3M", "DATE_TRUNC('quarter', {col})").
	Grain("P1Y", "DATE_TRUNC('year', {col})").
	Grain("1969-12-28T00:00:00Z/P1W", "DATE_TRUNC('week', {col} + interval '1 day') - interval '1 day'").
	ColumnType(`DOUBLE PRECISION`, core.GenericNumeric).
	ColumnType(`SERIAL`, core.GenericNumeric).
	ColumnType(`BYTEA`, core.GenericString).
	ColumnType(`ENUM`, core.GenericString).
	StandardColumnTypes().
	ErrorRule(
		`role "(?P<username>.*?)" does not exist`,
		`The username "{username}" does not exist.`,
		core.ConnectionInvalidUsernameError, nil,
	).
	ErrorRule(
		`password authentication failed for user "(?P<username>.*?)"`,
		`The password provided for username "{username}" is incorrect.`,
		core.ConnectionInvalidPasswordError, nil,
	).
	ErrorRule(
		`could not translate host name "(?P<hostname>.*?)" to address`,
		`The hostname "{hostname}" cannot be resolved.`,
		core.ConnectionInvalidHostnameError, nil,
	).
	ErrorRule(
		`connection to server at "(?P<hostname>.*?)"(?s:.*?)Connection refused`,
		`Port is closed on "{hostname}".`,
		core.ConnectionPortClosedError, nil,
	).
	ErrorRule(
		`database "(?P<database>.*?)" does not exist`,
		`Unable to connect to database "{database}".`,
		core.ConnectionUnknownDatabaseError, nil,
	).
	ErrorRule(
		`column "(?P<column>.*?)" does not exist`,
		`We can't seem to resolve the column "{column}".`,
		core.ColumnDoesNotExistError, nil,
	).
	ErrorRule(
		`relation "(?P<table>.*?)" does not exist`,
		`The table "{table}" does not exist. A valid table must be used to run this query.`,
		core.TableDoesNotExistError, nil,
	).
	ErrorRule(
		`schema "(?P<schema>.*?)" does not exist`,
		`The schema "{schema}" does not exist. A valid schema must be used to run this query.`,
		core.SchemaDoesNotExistError, nil,
	).
	Epoch("(timestamp 'epoch' + {col} * interval '1 second')", "(timestamp 'epoch' + {col} * interval '1 millisecond')").
	URI("postgresql", 5432).
	EncryptionParams(map[string]string{"sslmode": "require"}).
	Drivers("pgx", "postgres").
	Build()

func init() {
	engine.Register(Spec)
}
