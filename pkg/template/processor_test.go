package template

import (
	"reflect"
	"testing"

	"github.com/rabbitai/sqlkit/pkg/core"

	_ "github.com/rabbitai/sqlkit/pkg/engines/generic"
	_ "github.com/rabbitai/sqlkit/pkg/engines/trino"
)

func TestProcess(t *testing.T) {
	req := &RequestContext{
		UserID:    7,
		URLParams: map[string]string{"limit": "50"},
	}

	got, err := Process(
		"SELECT * FROM logs WHERE user_id = {{ current_user_id() }} LIMIT {{ url_param('limit', '10') }}",
		"generic", req, nil, nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SELECT * FROM logs WHERE user_id = 7 LIMIT 50"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !reflect.DeepEqual(req.CacheKeyParts, []any{7, "50"}) {
		t.Errorf("unexpected cache key parts: %v", req.CacheKeyParts)
	}
}

func TestProcessNilRequest(t *testing.T) {
	got, err := Process("SELECT {{ current_user_id() }}", "generic", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "SELECT 0" {
		t.Errorf("expected %q, got %q", "SELECT 0", got)
	}
}

func TestProcessExtraContext(t *testing.T) {
	got, err := Process(
		"SELECT * FROM {{ schema }}.t",
		"generic", nil, nil,
		map[string]any{"schema": "analytics"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "SELECT * FROM analytics.t" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestProcessUnsafeExtraContext(t *testing.T) {
	_, err := Process("SELECT 1", "generic", nil, nil, map[string]any{
		"ch": make(chan int),
	})
	if err == nil {
		t.Fatal("expected a security error")
	}

	cerr := CoreError(err)
	if cerr.Type != core.TemplateSecurityError {
		t.Errorf("expected %s, got %s", core.TemplateSecurityError, cerr.Type)
	}
}

func TestProcessEngineNamespace(t *testing.T) {
	// Engine macros live under the engine's canonical name and do not leak
	// into other engines' renders.
	got, err := Process("{{ trino.latest_partition }}", "trino", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == "{{ trino.latest_partition }}" {
		t.Error("trino namespace should be defined for the trino engine")
	}

	got, err = Process("{{ trino.latest_partition }}", "generic", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "{{ trino.latest_partition }}" {
		t.Errorf("expected undefined namespace to degrade to a literal, got %q", got)
	}
}

func TestCoreErrorGeneric(t *testing.T) {
	_, err := Process("{% for x in 5 %}{% endfor %}", "generic", nil, nil, nil)
	if err == nil {
		t.Fatal("expected a render error")
	}
	cerr := CoreError(err)
	if cerr.Type != core.GenericCommandError {
		t.Errorf("expected %s, got %s", core.GenericCommandError, cerr.Type)
	}
}
