package trino

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestPartition(t *testing.T) {
	SetPartitionResolver(func(table, key string) (string, error) {
		assert.Equal(t, "hive.logs", table)
		assert.Equal(t, "", key)
		return "ds=2024-01-15", nil
	})
	t.Cleanup(func() { SetPartitionResolver(nil) })

	got, err := latestPartition("hive.logs")
	require.NoError(t, err)
	assert.Equal(t, "ds=2024-01-15", got)
}

func TestLatestSubPartition(t *testing.T) {
	SetPartitionResolver(func(table, key string) (string, error) {
		return fmt.Sprintf("%s/%s", table, key), nil
	})
	t.Cleanup(func() { SetPartitionResolver(nil) })

	got, err := latestSubPartition("hive.logs", "hour")
	require.NoError(t, err)
	assert.Equal(t, "hive.logs/hour", got)
}

func TestPartitionMacroArgErrors(t *testing.T) {
	_, err := latestPartition()
	assert.Error(t, err)

	_, err = latestPartition(42)
	assert.Error(t, err)

	_, err = latestSubPartition("hive.logs")
	assert.Error(t, err)
}

func TestDefaultResolverFails(t *testing.T) {
	SetPartitionResolver(nil)

	_, err := latestPartition("hive.logs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no partition resolver configured")
}

func TestMacroNamespace(t *testing.T) {
	macros := Spec.Macros()
	require.Contains(t, macros, "latest_partition")
	require.Contains(t, macros, "latest_sub_partition")
}

func TestWeekVariantGrains(t *testing.T) {
	got, err := Spec.TimestampExpr(nil, "ts", core.EncodingPlain, "1969-12-29T00:00:00Z/P1W")
	require.NoError(t, err)
	assert.Equal(t, "DATE_TRUNC('week', CAST(ts AS TIMESTAMP))", got)
}

func TestComplexColumnTypes(t *testing.T) {
	for _, native := range []string{"ROW(x BIGINT)", "ARRAY(VARCHAR)", "MAP(VARCHAR, BIGINT)"} {
		spec := Spec.ColumnSpecFor(native)
		require.NotNil(t, spec, native)
		assert.Equal(t, core.GenericString, spec.Generic, native)
	}
}

func TestCancelRejectsMalformedQueryID(t *testing.T) {
	tests := []string{
		"20240101_123456_00001_abcde'); DROP TABLE t; --",
		"id with spaces",
		"id')",
		"",
	}
	for _, id := range tests {
		err := cancelQuery(context.Background(), nil, id)
		require.Error(t, err, id)
		assert.Contains(t, err.Error(), "invalid query id")
	}
}

func TestCancelAcceptsWellFormedQueryIDs(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	for _, id := range []string{
		"20240101_123456_00001_abcde",
		"0b8f1b52-6b86-4a7e-9b1d-0d6f0f9b8a11",
	} {
		mock.ExpectExec(fmt.Sprintf("CALL system.runtime.kill_query(query_id => '%s')", id)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		require.NoError(t, cancelQuery(context.Background(), db, id))
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
