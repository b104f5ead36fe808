package template

import (
	"reflect"
	"testing"

	"github.com/rabbitai/sqlkit/pkg/core"
)

func TestURLParam(t *testing.T) {
	req := &RequestContext{URLParams: map[string]string{"country": "NL"}}

	got, err := req.urlParam("country")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "NL" {
		t.Errorf("expected %q, got %v", "NL", got)
	}

	got, err = req.urlParam("region", "EU")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "EU" {
		t.Errorf("expected default %q, got %v", "EU", got)
	}

	got, err = req.urlParam("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing parameter, got %v", got)
	}

	// Every call contributes to the cache key, defaults included.
	want := []any{"NL", "EU", nil}
	if !reflect.DeepEqual(req.CacheKeyParts, want) {
		t.Errorf("expected cache key parts %v, got %v", want, req.CacheKeyParts)
	}
}

func TestCurrentUserMacros(t *testing.T) {
	req := &RequestContext{UserID: 7, Username: "alice"}

	id, err := req.currentUserID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("expected 7, got %v", id)
	}

	name, err := req.currentUsername()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "alice" {
		t.Errorf("expected %q, got %v", "alice", name)
	}

	if _, err := req.currentUserID(1); err == nil {
		t.Error("expected error for unexpected arguments")
	}

	want := []any{7, "alice"}
	if !reflect.DeepEqual(req.CacheKeyParts, want) {
		t.Errorf("expected cache key parts %v, got %v", want, req.CacheKeyParts)
	}
}

func TestCacheKeyWrapper(t *testing.T) {
	req := &RequestContext{}

	got, err := req.cacheKeyWrapper("opaque")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "opaque" {
		t.Errorf("expected value passed through, got %v", got)
	}
	if len(req.CacheKeyParts) != 1 || req.CacheKeyParts[0] != "opaque" {
		t.Errorf("expected cache key contribution, got %v", req.CacheKeyParts)
	}
}

func TestFilterValues(t *testing.T) {
	req := &RequestContext{
		Filters: []core.Filter{
			{Op: "IN", Col: "country", Val: []any{"NL", "BE"}},
			{Op: "==", Col: "country", Val: "DE"},
			{Op: "==", Col: "city", Val: "Utrecht"},
		},
	}

	got, err := req.filterValues("country")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{"NL", "BE", "DE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if len(req.RemovedFilters) != 0 {
		t.Errorf("filters should not be removed by default: %v", req.RemovedFilters)
	}
}

func TestFilterValuesDefault(t *testing.T) {
	req := &RequestContext{}

	got, err := req.filterValues("country", "NL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{"NL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected default %v, got %v", want, got)
	}
}

func TestFilterValuesRemoveFilter(t *testing.T) {
	req := &RequestContext{
		Filters: []core.Filter{
			{Op: "IN", Col: "country", Val: []any{"NL"}},
			{Op: "==", Col: "country", Val: "DE"},
		},
	}

	if _, err := req.filterValues("country", nil, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Deduplicated even when multiple filters match the column.
	if !reflect.DeepEqual(req.RemovedFilters, []string{"country"}) {
		t.Errorf("expected removed filters [country], got %v", req.RemovedFilters)
	}
}

func TestGetFilters(t *testing.T) {
	req := &RequestContext{
		Filters: []core.Filter{
			{Op: ">=", Col: "age", Val: 18},
			{Op: "==", Col: "city", Val: "Utrecht"},
		},
	}

	got, err := req.getFilters("age", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []any{map[string]any{"op": ">=", "col": "age", "val": 18}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !reflect.DeepEqual(req.RemovedFilters, []string{"age"}) {
		t.Errorf("expected removed filters [age], got %v", req.RemovedFilters)
	}
}

func TestGetFiltersNoMatch(t *testing.T) {
	req := &RequestContext{}

	got, err := req.getFilters("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestBuiltinMacroSet(t *testing.T) {
	macros := BuiltinMacros(&RequestContext{})
	for _, name := range []string{
		"url_param", "current_user_id", "current_username",
		"cache_key_wrapper", "filter_values", "get_filters",
	} {
		if _, ok := macros[name]; !ok {
			t.Errorf("missing builtin macro %q", name)
		}
	}
}
