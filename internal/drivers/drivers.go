// Package drivers wires the bundled database/sql drivers and reports
// which registered engines can actually open a connection in this build.
package drivers

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"  // "mysql"
	_ "github.com/jackc/pgx/v5/stdlib"  // "pgx"
	_ "github.com/marcboeker/go-duckdb" // "duckdb"
	_ "modernc.org/sqlite"              // "sqlite"

	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Status pairs an engine with the locally usable driver, if any.
type Status struct {
	Engine string
	Driver string // empty when no declared driver is compiled in
}

// Available cross-references every registered engine's declared driver
// names against the drivers compiled into this binary. The first match
// wins; engines with no usable driver are reported with an empty Driver.
func Available() []Status {
	registered := make(map[string]struct{})
	for _, name := range sql.Drivers() {
		registered[name] = struct{}{}
	}

	var out []Status
	for _, name := range engine.List() {
		spec := engine.Get(name)
		st := Status{Engine: name}
		for _, driver := range spec.DriverNames() {
			if _, ok := registered[driver]; ok {
				st.Driver = driver
				break
			}
		}
		out = append(out, st)
	}
	return out
}
