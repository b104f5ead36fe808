package template

import (
	"errors"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// Process expands a SQL template for the named engine. The context seen
// by the template is the fixed safe-macro set, the engine's own macro
// namespace nested under the engine's canonical name, and any caller
// extras. Every extra value is validated against the sandbox allowlist
// before the render starts.
func Process(sqlTemplate, engineName string, req *RequestContext, cfg *engine.Config, extra map[string]any) (string, error) {
	if req == nil {
		req = &RequestContext{}
	}
	spec := engine.Get(engineName)

	context := make(map[string]any, len(extra)+8)
	for name, fn := range BuiltinMacros(req) {
		context[name] = fn
	}
	if macros := spec.Macros(); len(macros) > 0 {
		context[spec.Name()] = macros
	}
	for key, v := range extra {
		context[key] = v
	}

	env, err := NewEnvironment(context, cfg.TemplateAllowedTypes())
	if err != nil {
		return "", err
	}

	return RenderString(sqlTemplate, "query.sql", env)
}

// CoreError translates a template failure into the structured error
// taxonomy for user-facing surfaces. Security violations get their own
// type so the UI can flag the template as unsafe.
func CoreError(err error) *core.Error {
	var secErr *SecurityError
	if errors.As(err, &secErr) {
		return core.NewError(core.TemplateSecurityError, secErr.Error(), core.SeverityError, nil)
	}
	return core.NewError(core.GenericCommandError, err.Error(), core.SeverityError, nil)
}
