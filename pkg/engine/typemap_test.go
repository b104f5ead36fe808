package engine

import (
	"testing"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnSpecForStandardTypes(t *testing.T) {
	s := New("typetest").StandardColumnTypes().Build()

	tests := []struct {
		native  string
		generic core.GenericType
	}{
		{"BOOLEAN", core.GenericBoolean},
		{"BOOL", core.GenericBoolean},
		{"TINYINT", core.GenericNumeric},
		{"BIGINT", core.GenericNumeric},
		{"BIGINT UNSIGNED", core.GenericNumeric},
		{"INT", core.GenericNumeric},
		{"INTEGER", core.GenericNumeric},
		{"DECIMAL(10,2)", core.GenericNumeric},
		{"DOUBLE PRECISION", core.GenericNumeric},
		{"TIMESTAMP WITH TIME ZONE", core.GenericTemporal},
		{"DATETIME", core.GenericTemporal},
		{"DATE", core.GenericTemporal},
		{"VARCHAR(255)", core.GenericString},
		{"NVARCHAR(40)", core.GenericString},
		{"LONGTEXT", core.GenericString},
		{"TEXT", core.GenericString},
		{"JSONB", core.GenericString},
		{"UUID", core.GenericString},
		{"varchar(10)", core.GenericString}, // case-insensitive
	}

	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			spec := s.ColumnSpecFor(tt.native)
			require.NotNil(t, spec)
			assert.Equal(t, tt.generic, spec.Generic)
			assert.Equal(t, tt.native, spec.NativeType)
			assert.Equal(t, tt.generic == core.GenericTemporal, spec.IsTemporal)
		})
	}
}

func TestColumnSpecForUnknownType(t *testing.T) {
	s := New("typetest").StandardColumnTypes().Build()
	assert.Nil(t, s.ColumnSpecFor("GEOMETRY"))
}

func TestColumnSpecForEngineRulesPrecede(t *testing.T) {
	// Engine-specific narrow rules are declared before the standard table
	// and must win on overlap.
	s := New("typetest").
		ColumnType(`TINYINT\(1\)`, core.GenericBoolean).
		StandardColumnTypes().
		Build()

	boolCol := s.ColumnSpecFor("TINYINT(1)")
	require.NotNil(t, boolCol)
	assert.Equal(t, core.GenericBoolean, boolCol.Generic)

	numCol := s.ColumnSpecFor("TINYINT(4)")
	require.NotNil(t, numCol)
	assert.Equal(t, core.GenericNumeric, numCol.Generic)
}

func TestColumnSpecForTrimsWhitespace(t *testing.T) {
	s := New("typetest").StandardColumnTypes().Build()
	spec := s.ColumnSpecFor("  BIGINT  ")
	require.NotNil(t, spec)
	assert.Equal(t, core.GenericNumeric, spec.Generic)
}
