package template

import (
	"strings"
	"testing"
)

func testEnv(t *testing.T, context map[string]any) *Environment {
	t.Helper()
	env, err := NewEnvironment(context, nil)
	if err != nil {
		t.Fatalf("unexpected error building environment: %v", err)
	}
	return env
}

func TestRenderer_Expressions(t *testing.T) {
	env := testEnv(t, map[string]any{
		"schema": "analytics",
		"limit":  500,
		"tags":   []string{"a", "b"},
	})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "SELECT * FROM users", "SELECT * FROM users"},
		{"simple expression", "SELECT * FROM {{ schema }}.users", "SELECT * FROM analytics.users"},
		{"multiple expressions", "{{ schema }}.{{ schema }}", "analytics.analytics"},
		{"integer expression", "LIMIT {{ limit }}", "LIMIT 500"},
		{"arithmetic", "LIMIT {{ limit * 2 }}", "LIMIT 1000"},
		{"string concatenation", `{{ schema + "_tmp" }}`, "analytics_tmp"},
		{"list indexing", "{{ tags[1] }}", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderString(tt.input, "test.sql", env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestRenderer_UndefinedExpressionsDegrade(t *testing.T) {
	env := testEnv(t, map[string]any{"schema": "analytics"})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "undefined name becomes literal placeholder",
			input:    "WHERE ds = {{ latest_ds }}",
			expected: "WHERE ds = {{ latest_ds }}",
		},
		{
			name:     "defined names still render alongside",
			input:    "SELECT * FROM {{ schema }}.t WHERE ds = {{ latest_ds }}",
			expected: "SELECT * FROM analytics.t WHERE ds = {{ latest_ds }}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderString(tt.input, "test.sql", env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestRenderer_UndefinedControlFlowFails(t *testing.T) {
	env := testEnv(t, nil)

	_, err := RenderString("{% for x in missing %}{{ x }}{% endfor %}", "test.sql", env)
	if err == nil {
		t.Fatal("expected error for undefined loop iterable")
	}
}

func TestRenderer_ForLoop(t *testing.T) {
	env := testEnv(t, map[string]any{
		"cols": []string{"id", "name", "email"},
	})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "inline loop",
			input:    "{% for x in [1, 2, 3] %}{{ x }}{% endfor %}",
			expected: "123",
		},
		{
			name:     "loop with colon",
			input:    "{% for x in [1, 2, 3]: %}{{ x }}{% endfor %}",
			expected: "123",
		},
		{
			name:     "empty loop",
			input:    "before{% for x in [] %}{{ x }}{% endfor %}after",
			expected: "beforeafter",
		},
		{
			name:     "loop over context list",
			input:    "{% for c in cols %}{{ c }},{% endfor %}",
			expected: "id,name,email,",
		},
		{
			name:     "nested loops",
			input:    "{% for a in [1, 2] %}{% for b in [3, 4] %}{{ a }}{{ b }} {% endfor %}{% endfor %}",
			expected: "13 14 23 24 ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderString(tt.input, "test.sql", env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestRenderer_ForLoopNonIterable(t *testing.T) {
	env := testEnv(t, nil)

	_, err := RenderString("{% for x in 42 %}{{ x }}{% endfor %}", "test.sql", env)
	if err == nil {
		t.Fatal("expected error iterating an integer")
	}
	if !strings.Contains(err.Error(), "cannot iterate") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestRenderer_Conditionals(t *testing.T) {
	env := testEnv(t, map[string]any{
		"env":     "prod",
		"verbose": false,
	})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "true branch",
			input:    `{% if env == "prod" %}live{% endif %}`,
			expected: "live",
		},
		{
			name:     "false branch renders nothing",
			input:    "{% if verbose %}debug{% endif %}",
			expected: "",
		},
		{
			name:     "else branch",
			input:    `{% if env == "dev" %}sample{% else %}full{% endif %}`,
			expected: "full",
		},
		{
			name:     "elif branch",
			input:    `{% if env == "dev" %}d{% elif env == "prod" %}p{% else %}o{% endif %}`,
			expected: "p",
		},
		{
			name:     "truthiness of empty string",
			input:    `{% if "" %}yes{% else %}no{% endif %}`,
			expected: "no",
		},
		{
			name:     "condition with colon",
			input:    `{% if env == "prod": %}live{% endif %}`,
			expected: "live",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderString(tt.input, "test.sql", env)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestRenderer_NoneRendersEmpty(t *testing.T) {
	env := testEnv(t, map[string]any{"v": nil})

	result, err := RenderString("x{{ v }}y", "test.sql", env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "xy" {
		t.Errorf("expected %q, got %q", "xy", result)
	}
}
