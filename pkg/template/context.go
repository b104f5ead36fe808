package template

import (
	"encoding/json"
	"fmt"
	"reflect"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/rabbitai/sqlkit/pkg/engine"
)

// ValidateContextValue checks one context value against the sandbox type
// allowlist and returns its sanitized form. Primitives pass through.
// Collections are round-tripped through JSON so anything that cannot be
// represented as plain data is stripped before it reaches a template.
// Callables are accepted only in the macro function shape. extraTypes
// names additional Go types whitelisted by deployment configuration.
func ValidateContextValue(key string, v any, extraTypes []string) (any, error) {
	switch v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	case engine.MacroFunc:
		return v, nil
	case func(args ...any) (any, error):
		return engine.MacroFunc(v.(func(args ...any) (any, error))), nil
	case map[string]engine.MacroFunc:
		return v, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return jsonRoundTrip(key, v)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, NewSecurityErrorf(key, "type %T is not allowed in a template context", v)
	}

	typeName := reflect.TypeOf(v).String()
	for _, allowed := range extraTypes {
		if typeName == allowed {
			return jsonRoundTrip(key, v)
		}
	}

	return nil, NewSecurityErrorf(key, "type %T is not allowed in a template context", v)
}

// jsonRoundTrip encodes and decodes a value through JSON, yielding plain
// []any / map[string]any data or a security error.
func jsonRoundTrip(key string, v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, NewSecurityErrorf(key, "value is not JSON-representable: %v", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, NewSecurityErrorf(key, "value is not JSON-representable: %v", err)
	}
	return out, nil
}

// goToStarlark converts a sanitized Go value to its Starlark form.
// Macro functions become native builtins whose results are validated
// before they re-enter the template.
func goToStarlark(name string, v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case string:
		return starlark.String(val), nil

	case bool:
		return starlark.Bool(val), nil

	case int:
		return starlark.MakeInt(val), nil
	case int8:
		return starlark.MakeInt(int(val)), nil
	case int16:
		return starlark.MakeInt(int(val)), nil
	case int32:
		return starlark.MakeInt(int(val)), nil
	case int64:
		return starlark.MakeInt64(val), nil
	case uint:
		return starlark.MakeUint(val), nil
	case uint8:
		return starlark.MakeUint(uint(val)), nil
	case uint16:
		return starlark.MakeUint(uint(val)), nil
	case uint32:
		return starlark.MakeUint(uint(val)), nil
	case uint64:
		return starlark.MakeUint64(val), nil

	case float32:
		return starlark.Float(float64(val)), nil
	case float64:
		return starlark.Float(val), nil

	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil

	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := goToStarlark(name, item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil

	case map[string]string:
		dict := starlark.NewDict(len(val))
		for k, s := range val {
			if err := dict.SetKey(starlark.String(k), starlark.String(s)); err != nil {
				return nil, fmt.Errorf("dict setkey %q: %w", k, err)
			}
		}
		return dict, nil

	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, item := range val {
			sv, err := goToStarlark(name, item)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict setkey %q: %w", k, err)
			}
		}
		return dict, nil

	case engine.MacroFunc:
		return macroBuiltin(name, val), nil

	case map[string]engine.MacroFunc:
		members := make(starlark.StringDict, len(val))
		for k, fn := range val {
			members[k] = macroBuiltin(k, fn)
		}
		return starlarkstruct.FromStringDict(starlark.String(name), members), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// macroBuiltin wraps a macro function as a Starlark builtin. Arguments
// are converted to Go values before the call and the result is validated
// against the sandbox allowlist on the way back.
func macroBuiltin(name string, fn engine.MacroFunc) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%s: keyword arguments are not supported", b.Name())
		}

		goArgs := make([]any, args.Len())
		for i := 0; i < args.Len(); i++ {
			gv, err := starlarkToGo(args.Index(i))
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", b.Name(), i, err)
			}
			goArgs[i] = gv
		}

		result, err := fn(goArgs...)
		if err != nil {
			return nil, err
		}

		sanitized, err := ValidateContextValue(b.Name(), result, nil)
		if err != nil {
			return nil, err
		}
		return goToStarlark(b.Name(), sanitized)
	})
}

// starlarkToGo converts a Starlark value back to a Go value.
func starlarkToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return string(val), nil

	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			return val.String(), nil
		}
		return i64, nil

	case starlark.Float:
		return float64(val), nil

	case starlark.Bool:
		return bool(val), nil

	case *starlark.List:
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := starlarkToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			result[i] = gv
		}
		return result, nil

	case starlark.Tuple:
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := starlarkToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("tuple index %d: %w", i, err)
			}
			result[i] = gv
		}
		return result, nil

	case *starlark.Dict:
		result := make(map[string]any)
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %s", item[0].Type())
			}
			gv, err := starlarkToGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
			result[string(key)] = gv
		}
		return result, nil

	default:
		return val.String(), nil
	}
}

// Environment holds the validated, converted globals for one render.
type Environment struct {
	globals starlark.StringDict
}

// NewEnvironment validates every context value and converts it to its
// Starlark form. Any disallowed value aborts the whole environment.
func NewEnvironment(context map[string]any, extraTypes []string) (*Environment, error) {
	globals := make(starlark.StringDict, len(context))
	for key, v := range context {
		sanitized, err := ValidateContextValue(key, v, extraTypes)
		if err != nil {
			return nil, err
		}
		sv, err := goToStarlark(key, sanitized)
		if err != nil {
			return nil, NewSecurityErrorf(key, "%v", err)
		}
		globals[key] = sv
	}
	return &Environment{globals: globals}, nil
}

// Globals returns the Starlark globals dictionary.
func (e *Environment) Globals() starlark.StringDict {
	return e.globals
}
