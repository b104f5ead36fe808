package engine

import (
	"fmt"
	"strings"

	"github.com/rabbitai/sqlkit/pkg/core"
)

// GrainNotSupportedError is returned when a requested time grain has no
// expression in the engine's effective grain table. This is a loud failure
// on purpose: silently falling back would bucket data at the wrong grain.
type GrainNotSupportedError struct {
	Engine string
	Grain  string
}

func (e *GrainNotSupportedError) Error() string {
	return fmt.Sprintf("engine %s has no expression for time grain %q", e.Engine, e.Grain)
}

// expandCol substitutes the column reference into a {col} template.
func expandCol(tmpl, col string) string {
	return strings.ReplaceAll(tmpl, "{col}", col)
}

// TimestampExpr produces the dialect-correct SQL fragment for a column
// reference, applying the epoch-to-timestamp conversion first when the
// source encoding requires it, then the grain truncation. An empty grain
// means no truncation.
func (s *Spec) TimestampExpr(cfg *Config, col string, enc core.TemporalEncoding, grain string) (string, error) {
	expr := col
	switch enc {
	case core.EncodingEpochSeconds:
		if s.epochSeconds == "" {
			return "", fmt.Errorf("engine %s cannot convert epoch-second columns", s.name)
		}
		expr = expandCol(s.epochSeconds, col)
	case core.EncodingEpochMillis:
		if s.epochMillis == "" {
			return "", fmt.Errorf("engine %s cannot convert epoch-millisecond columns", s.name)
		}
		expr = expandCol(s.epochMillis, col)
	}

	if grain == "" {
		return expr, nil
	}
	if s.timestampFn != nil {
		return s.timestampFn(s, expr, grain)
	}
	tmpl, ok := s.grainTable(cfg)[grain]
	if !ok {
		return "", &GrainNotSupportedError{Engine: s.name, Grain: grain}
	}
	return expandCol(tmpl, expr), nil
}
