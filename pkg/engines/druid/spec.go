// Package druid defines the Apache Druid engine spec.
//
// Druid's TIME_FLOOR takes ISO 8601 duration tokens directly, so grain
// truncation is computed from the token instead of a per-grain lookup
// table. Week variants carry their origin timestamp into TIME_FLOOR's
// third argument.
package druid

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

var durationRe = regexp.MustCompile(`^P(?:T\d+[SMH]|\d+[DWMY])$`)

func timeFloor(s *engine.Spec, col, grain string) (string, error) {
	origin := ""
	token := grain
	if i := strings.IndexByte(grain, '/'); i >= 0 {
		origin = grain[:i]
		token = grain[i+1:]
	}
	if !durationRe.MatchString(token) {
		return "", &engine.GrainNotSupportedError{Engine: s.Name(), Grain: grain}
	}
	if origin != "" {
		ts := strings.TrimSuffix(strings.Replace(origin, "T", " ", 1), "Z")
		return fmt.Sprintf("TIME_FLOOR(CAST(%s AS TIMESTAMP), '%s', TIMESTAMP '%s')", col, token, ts), nil
	}
	return fmt.Sprintf("TIME_FLOOR(CAST(%s AS TIMESTAMP), '%s')", col, token), nil
}

// Spec is the Apache Druid engine.
var Spec = engine.New("druid").
	EngineName("Apache Druid").
	Limit(core.LimitWrap).
	Grain("PT1S", "TIME_FLOOR(CAST({col} AS TIMESTAMP), 'PT1S')").
	Grain("PT1M", "TIME_FLOOR(CAST({col} AS TIMESTAMP), 'PT1M')").
	Grain("PT1H", "TIME_FLOOR(CAST({col} AS TIMESTAMP), 'PT1H')").
	Grain("P1D", "TIME_FLOOR(CAST({col} AS TIMESTAMP), 'P1D')").
	Grain("P1W", "TIME_FLOOR(CAST({col} AS TIMESTAMP), 'P1W')").
	Grain("P1M", "TIME_FLOOR(CAST({col} AS TIMESTAMP), 'P1M')").
	Grain("P3M", "TIME_FLOOR(CAST({col} AS TIMESTAMP), 'P3M')").
	Grain("P1Y", "TIME_FLOOR(CAST({col} AS TIMESTAMP), 'P1Y')").
	StandardColumnTypes().
	ErrorRule(
		`Column '(?P<column>.*?)' not found in any table`,
		`We can't seem to resolve the column "{column}".`,
		core.ColumnDoesNotExistError, nil,
	).
	ErrorRule(
		`Object '(?P<table>.*?)' not found`,
		`The table "{table}" does not exist. A valid table must be used to run this query.`,
		core.TableDoesNotExistError, nil,
	).
	Epoch("MILLIS_TO_TIMESTAMP({col} * 1000)", "MILLIS_TO_TIMESTAMP({col})").
	URI("druid", 8082).
	TimestampFunc(timeFloor).
	Build()

func init() {
	engine.Register(Spec)
}
