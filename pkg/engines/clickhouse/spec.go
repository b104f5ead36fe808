// Package clickhouse defines the ClickHouse engine spec.
//
// ClickHouse rejects a bare LIMIT appended to statements that already
// carry FORMAT clauses, so its limit strategy relies on the driver's
// fetch-side cap rather than SQL rewriting.
package clickhouse

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Spec is the ClickHouse engine.
var Spec = engine.New("clickhouse").
	EngineName("ClickHouse").
	Aliases("clickhousedb").
	Limit(core.LimitFetch).
	Grain("PT1S", "toStartOfSecond({col})").
	Grain("PT1M", "toStartOfMinute({col})").
	Grain("PT5M", "toStartOfFiveMinutes({col})").
	Grain("PT10M", "toStartOfTenMinutes({col})").
	Grain("PT15M", "toStartOfFifteenMinutes({col})").
	Grain("PT1H", "toStartOfHour({col})").
	Grain("P1D", "toStartOfDay({col})").
	Grain("P1W", "toMonday({col})").
	Grain("P1M", "toStartOfMonth({col})").
	Grain("P3M", "toStartOfQuarter({col})").
	Grain("P1Y", "toStartOfYear({col})").
	ColumnType(`U?INT(8|16|32|64|128|256)`, core.GenericNumeric).
	ColumnType(`FLOAT(32|64)`, core.GenericNumeric).
	ColumnType(`DECIMAL`, core.GenericNumeric).
	ColumnType(`DATETIME64`, core.GenericTemporal).
	ColumnType(`LOWCARDINALITY`, core.GenericString).
	ColumnType(`FIXEDSTRING`, core.GenericString).
	ColumnType(`ENUM`, core.GenericString).
	StandardColumnTypes().
	ErrorRule(
		`Code: 60.*Table (?P<table>.*?) does(?:n't| not) exist`,
		`The table "{table}" does not exist. A valid table must be used to run this query.`,
		core.TableDoesNotExistError, nil,
	).
	ErrorRule(
		`Code: 47.*Missing columns: '(?P<column>.*?)'`,
		`We can't seem to resolve the column "{column}".`,
		core.ColumnDoesNotExistError, nil,
	).
	ErrorRule(
		`Code: 516.*Authentication failed`,
		`Either the username or the password is incorrect.`,
		core.ConnectionAccessDeniedError, nil,
	).
	Epoch("toDateTime({col})", "toDateTime(intDiv({col}, 1000))").
	URI("clickhouse", 8123).
	EncryptionParams(map[string]string{"secure": "true"}).
	Build()

func init() {
	engine.Register(Spec)
}
