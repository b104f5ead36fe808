// Package generic provides the fallback engine spec. Unknown backend
// identifiers resolve here, so callers always get working (if plain)
// behavior: standard type mapping, in-place LIMIT rewriting, the no-op
// time grain and the generic error category.
package generic

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Spec is the generic fallback engine.
var Spec = engine.New("generic").
	EngineName("Generic Database").
	Limit(core.LimitForce).
	StandardColumnTypes().
	Build()

func init() {
	engine.SetFallback(Spec)
}
