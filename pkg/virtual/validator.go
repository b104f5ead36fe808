// Package virtual gates and executes user-authored SQL backing virtual
// datasets. Every statement passes the read-only validator before it is
// allowed anywhere near a driver.
package virtual

import (
	"fmt"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
	"github.com/rabbitai/sqlkit/pkg/sqlparse"
)

// Validate enforces the virtual dataset contract on raw SQL: exactly one
// statement, and that statement read-only under the engine's rules. A
// nil return means the SQL may execute.
func Validate(spec *engine.Spec, sqlText string) []*core.Error {
	stmts := sqlparse.SplitStatements(sqlText)

	if len(stmts) == 0 {
		return []*core.Error{core.NewError(
			core.EmptyQueryError,
			"The query is empty. Please enter a statement to run.",
			core.SeverityError,
			nil,
		)}
	}

	if len(stmts) > 1 {
		return []*core.Error{core.NewError(
			core.MultiStatementQueryError,
			fmt.Sprintf("Only single queries supported, got %d statements.", len(stmts)),
			core.SeverityError,
			nil,
		)}
	}

	stmt := sqlparse.Parse(stmts[0])
	if !spec.IsReadOnly(stmt) {
		verb := stmt.Verb()
		if verb == "" {
			verb = "statement"
		}
		return []*core.Error{core.NewError(
			core.DMLNotAllowedError,
			fmt.Sprintf("%s statements are not allowed against virtual datasets.", verb),
			core.SeverityError,
			nil,
		)}
	}

	return nil
}
