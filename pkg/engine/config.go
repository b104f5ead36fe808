package engine

// Config carries the deployment-wide tunables consumed by engine specs.
// It is built once at startup (see internal/config) and passed explicitly
// into the operations that need it; specs never reach into globals. A nil
// *Config is valid everywhere and means "no addons, no denylist".
type Config struct {
	// GrainAddons adds or overrides time-grain expressions per engine name.
	GrainAddons map[string]map[string]string

	// GrainDenylist removes grain tokens from every engine's offering.
	// Tokens absent from an engine's table are ignored, not an error.
	GrainDenylist []string

	// AllowedTypes names additional Go types permitted in template
	// contexts, beyond the built-in allowlist.
	AllowedTypes []string
}

func (c *Config) addonsFor(engineName string) map[string]string {
	if c == nil {
		return nil
	}
	return c.GrainAddons[engineName]
}

func (c *Config) denied() map[string]struct{} {
	if c == nil || len(c.GrainDenylist) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(c.GrainDenylist))
	for _, g := range c.GrainDenylist {
		m[g] = struct{}{}
	}
	return m
}

// TemplateAllowedTypes returns the configured extra type names for the
// template context allowlist.
func (c *Config) TemplateAllowedTypes() []string {
	if c == nil {
		return nil
	}
	return c.AllowedTypes
}
