package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultRowLimit, cfg.RowLimit)
	assert.Empty(t, cfg.Databases)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfigFromFile(t *testing.T) {
	defer ResetConfig()

	dir := t.TempDir()
	path := filepath.Join(dir, "rabbitai.yaml")
	content := `
log_level: debug
row_limit: 500
time_grain_addons:
  postgresql:
    PT5M: "five_minute_trunc({col})"
time_grain_denylist:
  - P1W
template_allowed_types:
  - config.customType
databases:
  warehouse:
    engine: postgresql
    host: db.local
    port: 5432
    username: rabbit
    database: analytics
    encryption: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 500, cfg.RowLimit)
	assert.Equal(t, "five_minute_trunc({col})", cfg.TimeGrainAddons["postgresql"]["PT5M"])
	assert.Equal(t, []string{"P1W"}, cfg.TimeGrainDenylist)
	assert.Equal(t, []string{"config.customType"}, cfg.TemplateAllowedTypes)

	db, ok := cfg.Databases["warehouse"]
	require.True(t, ok)
	assert.Equal(t, "postgresql", db.Engine)
	assert.Equal(t, "db.local", db.Host)
	assert.True(t, db.Encryption)

	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfigFindsFileInWorkingDir(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	require.NoError(t, os.WriteFile(ConfigFileName, []byte("log_level: warn\n"), 0o644))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ConfigFileName, GetConfigFileUsed())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	require.NoError(t, os.WriteFile(ConfigFileName, []byte("log_level: warn\n"), 0o644))
	t.Setenv("RABBITAI_LOG_LEVEL", "debug")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	t.Setenv("RABBITAI_ROW_LIMIT", "500")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("row-limit", DefaultRowLimit, "")
	require.NoError(t, fs.Set("row-limit", "25"))

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.RowLimit)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	defer ResetConfig()

	t.Setenv("RABBITAI_ROW_LIMIT", "500")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("row-limit", DefaultRowLimit, "")

	cfg, err := LoadConfig("", fs)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.RowLimit)
}

func TestLoadConfigBadFile(t *testing.T) {
	defer ResetConfig()

	dir := t.TempDir()
	path := filepath.Join(dir, "rabbitai.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unclosed"), 0o644))

	_, err := LoadConfig(path, nil)
	assert.Error(t, err)
}

func TestEngineConfig(t *testing.T) {
	cfg := &Config{
		TimeGrainAddons:      map[string]map[string]string{"mysql": {"PT5M": "x({col})"}},
		TimeGrainDenylist:    []string{"P1Y"},
		TemplateAllowedTypes: []string{"config.customType"},
	}

	ec := cfg.EngineConfig()
	require.NotNil(t, ec)
	assert.Equal(t, cfg.TimeGrainAddons, ec.GrainAddons)
	assert.Equal(t, cfg.TimeGrainDenylist, ec.GrainDenylist)
	assert.Equal(t, cfg.TemplateAllowedTypes, ec.AllowedTypes)

	var nilCfg *Config
	assert.Nil(t, nilCfg.EngineConfig())
}

func TestDatabaseConfigParameters(t *testing.T) {
	db := &DatabaseConfig{
		Username:   "rabbit",
		Password:   "secret",
		Host:       "db.local",
		Port:       5432,
		Database:   "analytics",
		Query:      map[string]string{"sslmode": "require"},
		Encryption: true,
	}

	p := db.Parameters()
	assert.Equal(t, "rabbit", p.Username)
	assert.Equal(t, "secret", p.Password)
	assert.Equal(t, "db.local", p.Host)
	assert.Equal(t, 5432, p.Port)
	assert.Equal(t, "analytics", p.Database)
	assert.Equal(t, map[string]string{"sslmode": "require"}, p.Query)
	assert.True(t, p.Encryption)
}
