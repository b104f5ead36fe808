// Package config loads process-wide configuration from file, environment
// and CLI flags. The engine-facing subset is exported as engine.Config so
// the library packages never depend on the loader.
package config

import (
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// DatabaseConfig describes one named database connection.
type DatabaseConfig struct {
	Engine string `koanf:"engine"` // engine name or alias, e.g. "postgresql"
	URI    string `koanf:"uri"`    // full connection URI, overrides the fields below

	Username   string            `koanf:"username"`
	Password   string            `koanf:"password"`
	Host       string            `koanf:"host"`
	Port       int               `koanf:"port"`
	Database   string            `koanf:"database"`
	Query      map[string]string `koanf:"query"`
	Encryption bool              `koanf:"encryption"`
}

// Parameters converts the discrete connection fields to core.Parameters.
func (d *DatabaseConfig) Parameters() *core.Parameters {
	return &core.Parameters{
		Username:   d.Username,
		Password:   d.Password,
		Host:       d.Host,
		Port:       d.Port,
		Database:   d.Database,
		Query:      d.Query,
		Encryption: d.Encryption,
	}
}

// Config is the full process configuration.
type Config struct {
	LogLevel string `koanf:"log_level"`
	RowLimit int    `koanf:"row_limit"`

	// TimeGrainAddons adds or overrides time-grain expressions per engine.
	TimeGrainAddons map[string]map[string]string `koanf:"time_grain_addons"`

	// TimeGrainDenylist removes grain tokens from every engine's offering.
	TimeGrainDenylist []string `koanf:"time_grain_denylist"`

	// TemplateAllowedTypes whitelists extra Go type names for template
	// contexts.
	TemplateAllowedTypes []string `koanf:"template_allowed_types"`

	// Databases maps connection names to their configuration.
	Databases map[string]DatabaseConfig `koanf:"databases"`
}

// EngineConfig extracts the subset consumed by engine specs.
func (c *Config) EngineConfig() *engine.Config {
	if c == nil {
		return nil
	}
	return &engine.Config{
		GrainAddons:   c.TimeGrainAddons,
		GrainDenylist: c.TimeGrainDenylist,
		AllowedTypes:  c.TemplateAllowedTypes,
	}
}
