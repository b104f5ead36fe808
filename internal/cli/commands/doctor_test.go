package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rabbitai/sqlkit/internal/config"
	"github.com/rabbitai/sqlkit/internal/testutil"
)

func TestDoctorNoDatabases(t *testing.T) {
	cmd := NewDoctorCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "No databases configured")
}

func TestDoctorReportsMissingParameters(t *testing.T) {
	cfg := &config.Config{
		Databases: map[string]config.DatabaseConfig{
			"warehouse": {Engine: "postgresql", Host: "db.local"},
		},
	}

	cmd := NewDoctorCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--format", "json"})
	cmd.SetContext(WithValues(context.Background(), cfg, testutil.NewLogger(t)))

	require.NoError(t, cmd.Execute())

	var checks []ConnectionCheck
	require.NoError(t, json.Unmarshal(out.Bytes(), &checks))
	require.Len(t, checks, 1)

	assert.Equal(t, "warehouse", checks[0].Name)
	assert.Equal(t, "postgresql", checks[0].Engine)
	assert.Equal(t, "warn", checks[0].Status)
	assert.Contains(t, checks[0].Details, "parameters are missing")
}

func TestDoctorChecksSortedByName(t *testing.T) {
	cfg := &config.Config{
		Databases: map[string]config.DatabaseConfig{
			"zeta":  {Engine: "mysql"},
			"alpha": {Engine: "mysql"},
		},
	}

	checks := probeConnections(cfg, testutil.NewLogger(t))
	require.Len(t, checks, 2)
	assert.Equal(t, "alpha", checks[0].Name)
	assert.Equal(t, "zeta", checks[1].Name)
}
