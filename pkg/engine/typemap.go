package engine

import (
	"strings"

	"github.com/rabbitai/sqlkit/pkg/core"
)

// ColumnSpecFor classifies a native column type string against the engine's
// ordered mapping table. First match wins. Returns nil when nothing
// matches; callers fall back to a generic/unknown type.
func (s *Spec) ColumnSpecFor(nativeType string) *core.ColumnSpec {
	t := strings.TrimSpace(nativeType)
	for _, r := range s.typeRules {
		if r.Pattern.MatchString(t) {
			return &core.ColumnSpec{
				NativeType: nativeType,
				Generic:    r.Generic,
				IsTemporal: r.Generic == core.GenericTemporal,
			}
		}
	}
	return nil
}
