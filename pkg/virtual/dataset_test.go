package virtual

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabbitai/sqlkit/internal/testutil"
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
	"github.com/rabbitai/sqlkit/pkg/engines/generic"
)

func newMock(t *testing.T) (*Executor, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Executor{
		DB:       db,
		Spec:     generic.Spec,
		RowLimit: 100,
		Logger:   testutil.NewLogger(t),
	}, mock
}

func resultRows() *sqlmock.Rows {
	return sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("id").OfType("BIGINT", int64(0)),
		sqlmock.NewColumn("name").OfType("VARCHAR", ""),
		sqlmock.NewColumn("created_at").OfType("TIMESTAMP", ""),
	)
}

func TestExecutorRun(t *testing.T) {
	e, mock := newMock(t)

	mock.ExpectQuery("SELECT * FROM users\nLIMIT 100").
		WillReturnRows(resultRows().
			AddRow(int64(1), "alice", "2024-01-01 00:00:00").
			AddRow(int64(2), "bob", "2024-01-02 00:00:00"))

	result, errs := e.Run(context.Background(), "SELECT * FROM users")
	require.Nil(t, errs)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.QueryID)

	require.Len(t, result.Columns, 3)
	assert.Equal(t, core.ResultColumn{
		Name: "id", NativeType: "BIGINT", Generic: core.GenericNumeric,
	}, result.Columns[0])
	assert.Equal(t, core.ResultColumn{
		Name: "name", NativeType: "VARCHAR", Generic: core.GenericString,
	}, result.Columns[1])
	assert.Equal(t, core.ResultColumn{
		Name: "created_at", NativeType: "TIMESTAMP", Generic: core.GenericTemporal, IsTemporal: true,
	}, result.Columns[2])

	require.Len(t, result.Rows, 2)
	assert.Equal(t, []any{int64(1), "alice", "2024-01-01 00:00:00"}, result.Rows[0])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorRunRejectsUnsafeSQL(t *testing.T) {
	e, mock := newMock(t)

	_, errs := e.Run(context.Background(), "DROP TABLE users")
	require.Len(t, errs, 1)
	assert.Equal(t, core.DMLNotAllowedError, errs[0].Type)

	// The driver is never reached.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorRunTranslatesDriverErrors(t *testing.T) {
	e, mock := newMock(t)
	e.Spec = engine.New("mocksql").
		EngineName("MockSQL").
		ErrorRule(
			`Unknown column '(?P<column>.*?)' in 'field list'`,
			`We can't seem to resolve the column "{column}".`,
			core.ColumnDoesNotExistError, nil,
		).
		Build()

	mock.ExpectQuery("SELECT missing FROM users\nLIMIT 100").
		WillReturnError(errors.New("Unknown column 'missing' in 'field list'"))

	result, errs := e.Run(context.Background(), "SELECT missing FROM users")
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.Equal(t, core.ColumnDoesNotExistError, errs[0].Type)
	assert.Equal(t, `We can't seem to resolve the column "missing".`, errs[0].Message)
}

func TestExecutorRunFillsDatabaseInErrorMessages(t *testing.T) {
	e, mock := newMock(t)
	e.Database = "prod"
	e.Spec = engine.New("mocksql").
		EngineName("MockSQL").
		ErrorRule(
			`Access denied for user '(?P<username>.*?)'@'(?P<hostname>.*?)'`,
			`Either the username "{username}", password, or database name "{database}" are incorrect.`,
			core.ConnectionAccessDeniedError, nil,
		).
		Build()

	mock.ExpectQuery("SELECT 1\nLIMIT 100").
		WillReturnError(errors.New("Access denied for user 'bob'@'db.local'"))

	_, errs := e.Run(context.Background(), "SELECT 1")
	require.Len(t, errs, 1)
	assert.Equal(t, `Either the username "bob", password, or database name "prod" are incorrect.`, errs[0].Message)
}

func TestExecutorRunFetchLimit(t *testing.T) {
	e, mock := newMock(t)
	e.Spec = engine.New("fetchmock").Limit(core.LimitFetch).StandardColumnTypes().Build()
	e.RowLimit = 2

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("id").OfType("BIGINT", int64(0)),
	)
	for i := 1; i <= 5; i++ {
		rows.AddRow(int64(i))
	}

	// Fetch-limited engines leave the SQL untouched.
	mock.ExpectQuery("SELECT id FROM t").WillReturnRows(rows)

	result, errs := e.Run(context.Background(), "SELECT id FROM t")
	require.Nil(t, errs)
	require.NotNil(t, result)
	assert.Len(t, result.Rows, 2)
}

func TestExecutorRunByteSlicesBecomeStrings(t *testing.T) {
	e, mock := newMock(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("name").OfType("VARCHAR", ""),
	).AddRow([]byte("alice"))

	mock.ExpectQuery("SELECT name FROM users\nLIMIT 100").WillReturnRows(rows)

	result, errs := e.Run(context.Background(), "SELECT name FROM users")
	require.Nil(t, errs)
	assert.Equal(t, "alice", result.Rows[0][0])
}

func TestExecutorCancelUnsupported(t *testing.T) {
	e, _ := newMock(t)

	err := e.Cancel(context.Background(), "some-query-id")
	assert.ErrorIs(t, err, engine.ErrCancelUnsupported)
}
