package engine

import (
	"fmt"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/sqlparse"
)

// ApplyLimit applies the engine's row-limiting strategy to a statement.
// With force, an existing LIMIT is overwritten; without it, a limit is only
// added when absent. The result always carries exactly one top-level LIMIT
// when limiting applies, so re-application is idempotent.
func (s *Spec) ApplyLimit(sqlText string, limit int, force bool) string {
	if limit <= 0 {
		return sqlText
	}
	switch s.limitMethod {
	case core.LimitFetch:
		// Limiting happens at the driver-fetch layer.
		return sqlText

	case core.LimitWrap:
		stmt := sqlparse.Parse(sqlText)
		if _, ok := stmt.Limit(); ok {
			// Already limited (e.g. by a previous wrap): rewrite in place
			// instead of nesting another subquery.
			if !force {
				return sqlText
			}
			return stmt.WithLimit(limit)
		}
		inner := sqlparse.TrimTrailingSemicolon(sqlText)
		return fmt.Sprintf("SELECT * FROM (\n%s\n) AS inline_view\nLIMIT %d", inner, limit)

	default: // core.LimitForce
		stmt := sqlparse.Parse(sqlText)
		if _, ok := stmt.Limit(); ok && !force {
			return sqlText
		}
		return stmt.WithLimit(limit)
	}
}
