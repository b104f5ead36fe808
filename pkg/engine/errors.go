package engine

import (
	"fmt"
	"strings"

	"github.com/rabbitai/sqlkit/pkg/core"
)

// expandParams substitutes {name} placeholders from a parameter map.
func expandParams(tmpl string, params map[string]any) string {
	out := tmpl
	for k, v := range params {
		out = strings.ReplaceAll(out, "{"+k+"}", fmt.Sprint(v))
	}
	return out
}

// ExtractErrors translates a raw driver error into structured errors. The
// engine's rules are tried in declaration order; the first matching rule
// interpolates its named regex groups plus the supplied context into the
// message template. When nothing matches, a generic engine-error category
// carries the raw message. This is the only sanctioned path from driver
// exceptions to user-facing errors.
func (s *Spec) ExtractErrors(err error, context map[string]any) []*core.Error {
	msg := err.Error()
	for _, rule := range s.errorRules {
		m := rule.Pattern.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		params := make(map[string]any, len(context)+len(m))
		for k, v := range context {
			params[k] = v
		}
		for i, name := range rule.Pattern.SubexpNames() {
			if name != "" && i < len(m) {
				params[name] = m[i]
			}
		}
		extra := map[string]any{"engine_name": s.engineName}
		for k, v := range rule.Extra {
			extra[k] = v
		}
		return []*core.Error{
			core.NewError(rule.Type, expandParams(rule.Message, params), core.SeverityError, extra),
		}
	}
	return []*core.Error{
		core.NewError(
			core.GenericDBEngineError,
			fmt.Sprintf("%s error: %s", s.engineName, msg),
			core.SeverityError,
			map[string]any{"engine_name": s.engineName},
		),
	}
}
