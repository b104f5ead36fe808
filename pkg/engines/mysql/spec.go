// Package mysql defines the MySQL engine spec (also used for MariaDB).
package mysql

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Spec is the MySQL engine.
var Spec = engine.New("mysql").
	EngineName("MySQL").
	Aliases("mariadb").
	Limit(core.LimitForce).
	Grain("PT1S", "DATE_ADD(DATE({col}), INTERVAL (HOUR({col})*60*60 + MINUTE({col})*60 + SECOND({col})) SECOND)").
	Grain("PT1M", "DATE_ADD(DATE({col}), INTERVAL (HOUR({col})*60 + MINUTE({col})) MINUTE)").
	Grain("PT1H", "DATE_ADD(DATE({col}), INTERVAL HOUR({col}) HOUR)").
	Grain("P1D", "DATE({col})").
	Grain("P1W", "DATE(DATE_SUB({col}, INTERVAL DAYOFWEEK({col}) - 1 DAY))").
	Grain("P1M", "DATE(DATE_SUB({col}, INTERVAL DAYOFMONTH({col}) - 1 DAY))").
	Grain("P3M", "MAKEDATE(YEAR({col}), 1) + INTERVAL QUARTER({col}) QUARTER - INTERVAL 1 QUARTER").
	Grain("P1Y", "DATE(DATE_SUB({col}, INTERVAL DAYOFYEAR({col}) - 1 DAY))").
	Grain("1969-12-29T00:00:00Z/P1W", "DATE(DATE_SUB({col}, INTERVAL DAYOFWEEK(DATE_SUB({col}, INTERVAL 1 DAY)) - 1 DAY))").
	ColumnType(`TINYINT\(1\)`, core.GenericBoolean).
	ColumnType(`TINYINT UNSIGNED`, core.GenericNumeric).
	ColumnType(`YEAR`, core.GenericTemporal).
	StandardColumnTypes().
	ErrorRule(
		`Access denied for user '(?P<username>.*?)'@'(?P<hostname>.*?)'`,
		`Either the username "{username}", password, or database name "{database}" are incorrect.`,
		core.ConnectionAccessDeniedError, nil,
	).
	ErrorRule(
		`Unknown MySQL server host '(?P<hostname>.*?)'`,
		`Unknown MySQL server host "{hostname}".`,
		core.ConnectionInvalidHostnameError, nil,
	).
	ErrorRule(
		`Can't connect to MySQL server on '(?P<hostname>.*?)'`,
		`The host "{hostname}" might be down and can't be reached.`,
		core.ConnectionHostDownError, nil,
	).
	ErrorRule(
		`Unknown database '(?P<database>.*?)'`,
		`Unable to connect to database "{database}".`,
		core.ConnectionUnknownDatabaseError, nil,
	).
	ErrorRule(
		`Unknown column '(?P<column>.*?)' in 'field list'`,
		`We can't seem to resolve the column "{column}".`,
		core.ColumnDoesNotExistError, nil,
	).
	ErrorRule(
		`Table '(?P<table>.*?)' doesn't exist`,
		`The table "{table}" does not exist. A valid table must be used to run this query.`,
		core.TableDoesNotExistError, nil,
	).
	Epoch("from_unixtime({col})", "from_unixtime({col} / 1000)").
	URI("mysql", 3306).
	EncryptionParams(map[string]string{"tls": "true"}).
	Drivers("mysql").
	Build()

func init() {
	engine.Register(Spec)
}
