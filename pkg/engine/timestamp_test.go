package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timestampTestSpec() *Spec {
	return New("tstest").
		Grain("PT1M", "DATE_TRUNC('minute', {col})").
		Grain("P1D", "DATE_TRUNC('day', {col})").
		Epoch("from_unixtime({col})", "from_unixtime({col} / 1000)").
		Build()
}

func TestTimestampExpr(t *testing.T) {
	s := timestampTestSpec()

	tests := []struct {
		name     string
		col      string
		enc      core.TemporalEncoding
		grain    string
		expected string
	}{
		{
			name:     "plain column no grain",
			col:      "ts",
			enc:      core.EncodingPlain,
			grain:    "",
			expected: "ts",
		},
		{
			name:     "plain column with grain",
			col:      "ts",
			enc:      core.EncodingPlain,
			grain:    "P1D",
			expected: "DATE_TRUNC('day', ts)",
		},
		{
			name:     "epoch seconds no grain",
			col:      "created",
			enc:      core.EncodingEpochSeconds,
			grain:    "",
			expected: "from_unixtime(created)",
		},
		{
			name:     "epoch seconds with grain nests conversion",
			col:      "created",
			enc:      core.EncodingEpochSeconds,
			grain:    "PT1M",
			expected: "DATE_TRUNC('minute', from_unixtime(created))",
		},
		{
			name:     "epoch millis with grain",
			col:      "created_ms",
			enc:      core.EncodingEpochMillis,
			grain:    "P1D",
			expected: "DATE_TRUNC('day', from_unixtime(created_ms / 1000))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.TimestampExpr(nil, tt.col, tt.enc, tt.grain)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTimestampExprUnknownGrain(t *testing.T) {
	s := timestampTestSpec()

	_, err := s.TimestampExpr(nil, "ts", core.EncodingPlain, "PT7M")
	require.Error(t, err)

	var gerr *GrainNotSupportedError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, "tstest", gerr.Engine)
	assert.Equal(t, "PT7M", gerr.Grain)
}

func TestTimestampExprEpochUnsupported(t *testing.T) {
	s := New("noepoch").Grain("P1D", "DATE({col})").Build()

	_, err := s.TimestampExpr(nil, "ts", core.EncodingEpochSeconds, "P1D")
	assert.Error(t, err)
}

func TestTimestampExprAddonGrain(t *testing.T) {
	s := timestampTestSpec()
	cfg := &Config{
		GrainAddons: map[string]map[string]string{
			"tstest": {"PT5M": "trunc_5min({col})"},
		},
	}

	got, err := s.TimestampExpr(cfg, "ts", core.EncodingPlain, "PT5M")
	require.NoError(t, err)
	assert.Equal(t, "trunc_5min(ts)", got)
}

func TestTimestampFuncOverride(t *testing.T) {
	s := New("fntest").
		Grain("P1D", "unused").
		TimestampFunc(func(s *Spec, col, grain string) (string, error) {
			if grain == "BAD" {
				return "", fmt.Errorf("no such grain")
			}
			return fmt.Sprintf("TIME_FLOOR(%s, '%s')", col, grain), nil
		}).
		Epoch("", "MILLIS_TO_TIMESTAMP({col})").
		Build()

	got, err := s.TimestampExpr(nil, "__time", core.EncodingEpochMillis, "P1D")
	require.NoError(t, err)
	assert.Equal(t, "TIME_FLOOR(MILLIS_TO_TIMESTAMP(__time), 'P1D')", got)

	_, err = s.TimestampExpr(nil, "__time", core.EncodingPlain, "BAD")
	assert.Error(t, err)
}
