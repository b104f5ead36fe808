// Package trino defines the Trino engine spec.
//
// Trino exposes a partition macro family (latest_partition,
// latest_sub_partition) under its own template namespace. Resolving a
// partition needs a live catalog, so the lookup is pluggable: callers
// that can reach the metastore install a resolver, everything else gets
// a descriptive error instead of silently wrong SQL.
package trino

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// PartitionResolver resolves the most recent partition value for a
// table, optionally narrowed to a single partition key.
type PartitionResolver func(table, key string) (string, error)

var resolver PartitionResolver = func(table, key string) (string, error) {
	return "", fmt.Errorf("trino: no partition resolver configured for table %q", table)
}

// SetPartitionResolver installs the lookup used by the latest_partition
// macro family. Passing nil restores the default failing resolver.
func SetPartitionResolver(r PartitionResolver) {
	if r == nil {
		r = func(table, key string) (string, error) {
			return "", fmt.Errorf("trino: no partition resolver configured for table %q", table)
		}
	}
	resolver = r
}

func latestPartition(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("latest_partition expects 1 argument, got %d", len(args))
	}
	table, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("latest_partition expects a table name string")
	}
	return resolver(table, "")
}

func latestSubPartition(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("latest_sub_partition expects 2 arguments, got %d", len(args))
	}
	table, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("latest_sub_partition expects a table name string")
	}
	key, ok := args[1].(string)
	if !ok {
		return nil, fmt.Errorf("latest_sub_partition expects a partition key string")
	}
	return resolver(table, key)
}

// queryIDPattern matches Trino query ids and the UUIDs minted by the
// executor. Anything else is rejected before being spliced into the CALL.
var queryIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func cancelQuery(ctx context.Context, db *sql.DB, queryID string) error {
	if !queryIDPattern.MatchString(queryID) {
		return fmt.Errorf("trino: invalid query id %q", queryID)
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf("CALL system.runtime.kill_query(query_id => '%s')", queryID))
	return err
}

// Spec is the Trino engine.
var Spec = engine.New("trino").
	EngineName("Trino").
	Limit(core.LimitForce).
	Grain("PT1S", "DATE_TRUNC('second', CAST({col} AS TIMESTAMP))").
	Grain("PT1M", "DATE_TRUNC('minute', CAST({col} AS TIMESTAMP))").
	Grain("PT1H", "DATE_TRUNC('hour', CAST({col} AS TIMESTAMP))").
	Grain("P1D", "DATE_TRUNC('day', CAST({col} AS TIMESTAMP))").
	Grain("P1W", "DATE_TRUNC('week', CAST({col} AS TIMESTAMP))").
	Grain("P1M", "DATE_TRUNC('month', CAST({col} AS TIMESTAMP))").
	Grain("P3M", "DATE_TRUNC('quarter', CAST({col} AS TIMESTAMP))").
	Grain("P1Y", "DATE_TRUNC('year', CAST({col} AS TIMESTAMP))").
	Grain("1969-12-28T00:00:00Z/P1W", "DATE_ADD('day', -1, DATE_TRUNC('week', DATE_ADD('day', 1, CAST({col} AS TIMESTAMP))))").
	Grain("1969-12-29T00:00:00Z/P1W", "DATE_TRUNC('week', CAST({col} AS TIMESTAMP))").
	ColumnType(`ROW`, core.GenericString).
	ColumnType(`ARRAY`, core.GenericString).
	ColumnType(`MAP`, core.GenericString).
	StandardColumnTypes().
	ErrorRule(
		`Column '(?P<column>.*?)' cannot be resolved`,
		`We can't seem to resolve the column "{column}".`,
		core.ColumnDoesNotExistError, nil,
	).
	ErrorRule(
		`Table '(?P<table>.*?)' does not exist`,
		`The table "{table}" does not exist. A valid table must be used to run this query.`,
		core.TableDoesNotExistError, nil,
	).
	ErrorRule(
		`Schema '(?P<schema>.*?)' does not exist`,
		`The schema "{schema}" does not exist. A valid schema must be used to run this query.`,
		core.SchemaDoesNotExistError, nil,
	).
	Epoch("from_unixtime({col})", "from_unixtime(CAST({col} AS DOUBLE) / 1000)").
	URI("trino", 8080).
	EncryptionParams(map[string]string{"SSL": "true"}).
	Macro("latest_partition", latestPartition).
	Macro("latest_sub_partition", latestSubPartition).
	CancelFunc(cancelQuery).
	Build()

func init() {
	engine.Register(Spec)
}
