package template

import (
	"fmt"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// RequestContext carries the per-request state exposed to templates
// through the built-in macros. Macros that contribute to the query cache
// key record their values in CacheKeyParts so the caller can build a key
// that changes whenever a macro's output would.
type RequestContext struct {
	UserID    int
	Username  string
	URLParams map[string]string
	Filters   []core.Filter

	// CacheKeyParts accumulates values recorded by cache-key-contributing
	// macros during a render.
	CacheKeyParts []any

	// RemovedFilters lists columns whose filters a template consumed via
	// filter_values/get_filters with remove_filter set. The outer query
	// layer must not re-apply them.
	RemovedFilters []string
}

// CacheKey appends a value to the cache key contributors and returns it
// unchanged.
func (r *RequestContext) CacheKey(v any) any {
	r.CacheKeyParts = append(r.CacheKeyParts, v)
	return v
}

func (r *RequestContext) removeFilter(column string) {
	for _, c := range r.RemovedFilters {
		if c == column {
			return
		}
	}
	r.RemovedFilters = append(r.RemovedFilters, column)
}

// urlParam implements url_param(name, default=None). The returned value
// is recorded as a cache key contributor.
func (r *RequestContext) urlParam(args ...any) (any, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("url_param expects 1 or 2 arguments, got %d", len(args))
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("url_param expects a parameter name string")
	}

	if v, ok := r.URLParams[name]; ok {
		return r.CacheKey(v), nil
	}
	if len(args) == 2 {
		return r.CacheKey(args[1]), nil
	}
	return r.CacheKey(nil), nil
}

// currentUserID implements current_user_id(). Contributes to the cache
// key so results are not shared across users.
func (r *RequestContext) currentUserID(args ...any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("current_user_id expects no arguments, got %d", len(args))
	}
	return r.CacheKey(r.UserID), nil
}

// currentUsername implements current_username(). Contributes to the
// cache key.
func (r *RequestContext) currentUsername(args ...any) (any, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("current_username expects no arguments, got %d", len(args))
	}
	return r.CacheKey(r.Username), nil
}

// cacheKeyWrapper implements cache_key_wrapper(value): explicit opt-in of
// an arbitrary value into the cache key.
func (r *RequestContext) cacheKeyWrapper(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("cache_key_wrapper expects 1 argument, got %d", len(args))
	}
	return r.CacheKey(args[0]), nil
}

// filterValues implements filter_values(column, default=None,
// remove_filter=False): the flat list of values from every applied
// filter on the column.
func (r *RequestContext) filterValues(args ...any) (any, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, fmt.Errorf("filter_values expects 1 to 3 arguments, got %d", len(args))
	}
	column, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("filter_values expects a column name string")
	}

	remove := false
	if len(args) == 3 {
		remove, ok = args[2].(bool)
		if !ok {
			return nil, fmt.Errorf("filter_values expects a boolean remove_filter")
		}
	}

	var values []any
	for _, f := range r.Filters {
		if f.Col != column {
			continue
		}
		if remove {
			r.removeFilter(column)
		}
		switch v := f.Val.(type) {
		case []any:
			values = append(values, v...)
		default:
			values = append(values, v)
		}
	}

	if len(values) == 0 && len(args) >= 2 && args[1] != nil {
		values = append(values, args[1])
	}
	return values, nil
}

// getFilters implements get_filters(column, remove_filter=False): the
// applied filters for the column in {op, col, val} form, so a template
// can translate operators itself.
func (r *RequestContext) getFilters(args ...any) (any, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("get_filters expects 1 or 2 arguments, got %d", len(args))
	}
	column, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("get_filters expects a column name string")
	}

	remove := false
	if len(args) == 2 {
		remove, ok = args[1].(bool)
		if !ok {
			return nil, fmt.Errorf("get_filters expects a boolean remove_filter")
		}
	}

	filters := make([]any, 0)
	for _, f := range r.Filters {
		if f.Col != column {
			continue
		}
		if remove {
			r.removeFilter(column)
		}
		filters = append(filters, map[string]any{
			"op":  f.Op,
			"col": f.Col,
			"val": f.Val,
		})
	}
	return filters, nil
}

// BuiltinMacros returns the fixed safe-macro set bound to the request
// context. Every template sees these regardless of engine.
func BuiltinMacros(r *RequestContext) map[string]engine.MacroFunc {
	return map[string]engine.MacroFunc{
		"url_param":         r.urlParam,
		"current_user_id":   r.currentUserID,
		"current_username":  r.currentUsername,
		"cache_key_wrapper": r.cacheKeyWrapper,
		"filter_values":     r.filterValues,
		"get_filters":       r.getFilters,
	}
}
