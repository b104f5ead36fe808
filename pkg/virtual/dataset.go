package virtual

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Executor runs validated virtual dataset SQL against a live connection
// and normalizes the result. Driver errors never escape raw: they pass
// through the engine's error translation table.
type Executor struct {
	DB     *sql.DB
	Spec   *engine.Spec
	Config *engine.Config
	Logger *slog.Logger

	// RowLimit caps the result size. Applied as SQL for engines with a
	// rewriting limit strategy and at scan time for fetch-limited ones.
	RowLimit int

	// Database names the target database, used to fill message
	// placeholders during driver error translation.
	Database string
}

func (e *Executor) errorContext() map[string]any {
	if e.Database == "" {
		return nil
	}
	return map[string]any{"database": e.Database}
}

func (e *Executor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Run validates, limits and executes one statement. Validation or driver
// failures come back as structured errors with a nil result.
func (e *Executor) Run(ctx context.Context, sqlText string) (*core.QueryResult, []*core.Error) {
	if errs := Validate(e.Spec, sqlText); errs != nil {
		return nil, errs
	}

	limited := e.Spec.ApplyLimit(sqlText, e.RowLimit, false)
	queryID := uuid.NewString()

	log := e.logger().With("engine", e.Spec.Name(), "query_id", queryID)
	log.Debug("executing virtual dataset query", "limit", e.RowLimit)

	rows, err := e.DB.QueryContext(ctx, limited)
	if err != nil {
		log.Warn("query failed", "error", err)
		return nil, e.Spec.ExtractErrors(err, e.errorContext())
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, e.Spec.ExtractErrors(err, e.errorContext())
	}

	columns := make([]core.ResultColumn, len(colTypes))
	for i, ct := range colTypes {
		col := core.ResultColumn{
			Name:       ct.Name(),
			NativeType: ct.DatabaseTypeName(),
		}
		if spec := e.Spec.ColumnSpecFor(col.NativeType); spec != nil {
			col.Generic = spec.Generic
			col.IsTemporal = spec.IsTemporal
		}
		columns[i] = col
	}

	fetchCap := 0
	if e.RowLimit > 0 && e.Spec.LimitMethod() == core.LimitFetch {
		fetchCap = e.RowLimit
	}

	var data [][]any
	for rows.Next() {
		if fetchCap > 0 && len(data) >= fetchCap {
			break
		}
		scan := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range scan {
			ptrs[i] = &scan[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, e.Spec.ExtractErrors(err, e.errorContext())
		}
		for i, v := range scan {
			if b, ok := v.([]byte); ok {
				scan[i] = string(b)
			}
		}
		data = append(data, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Spec.ExtractErrors(err, e.errorContext())
	}

	log.Debug("query complete", "rows", len(data))

	return &core.QueryResult{
		QueryID: queryID,
		Columns: columns,
		Rows:    data,
	}, nil
}

// Cancel asks the engine to abort a running query by its identifier.
func (e *Executor) Cancel(ctx context.Context, queryID string) error {
	return e.Spec.CancelQuery(ctx, e.DB, queryID)
}
