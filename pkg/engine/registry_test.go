package engine

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLookup(t *testing.T) {
	s := New("regtest").Aliases("regalias", "RegOther").Build()
	Register(s)

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"canonical name", "regtest", true},
		{"canonical name uppercase", "RegTest", true},
		{"alias", "regalias", true},
		{"alias mixed case", "REGOTHER", true},
		{"unknown", "no_such_engine", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.query)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Same(t, s, got)
			}
		})
	}
}

func TestRegisterMalformed(t *testing.T) {
	before := len(List())
	Register(nil)
	Register(&Spec{})
	assert.Len(t, List(), before)
}

func TestGetFallback(t *testing.T) {
	fb := New("regtest_fallback").Build()
	SetFallback(fb)

	// Registered names still resolve to their own spec.
	s := New("regtest_real").Build()
	Register(s)
	assert.Same(t, s, Get("regtest_real"))

	// Unknown names fall back instead of failing.
	assert.Same(t, fb, Get("no_such_engine"))
}

func TestList(t *testing.T) {
	Register(New("regtest_list_a").Build())
	Register(New("regtest_list_b").Build())

	names := List()
	require.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "regtest_list_a")
	assert.Contains(t, names, "regtest_list_b")
	// Aliases never appear in the canonical list.
	assert.NotContains(t, names, "regalias")
}
