// Package all registers every bundled engine spec. Import it for its
// side effects:
//
//	import _ "github.com/rabbitai/sqlkit/pkg/engines/all"
package all

import (
	_ "github.com/rabbitai/sqlkit/pkg/engines/athena"
	_ "github.com/rabbitai/sqlkit/pkg/engines/clickhouse"
	_ "github.com/rabbitai/sqlkit/pkg/engines/druid"
	_ "github.com/rabbitai/sqlkit/pkg/engines/duckdb"
	_ "github.com/rabbitai/sqlkit/pkg/engines/generic"
	_ "github.com/rabbitai/sqlkit/pkg/engines/gsheets"
	_ "github.com/rabbitai/sqlkit/pkg/engines/mysql"
	_ "github.com/rabbitai/sqlkit/pkg/engines/postgres"
	_ "github.com/rabbitai/sqlkit/pkg/engines/presto"
	_ "github.com/rabbitai/sqlkit/pkg/engines/snowflake"
	_ "github.com/rabbitai/sqlkit/pkg/engines/sqlite"
	_ "github.com/rabbitai/sqlkit/pkg/engines/trino"
)
