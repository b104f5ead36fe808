package engine

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Global spec registry. Populated from pkg/engines/*/ init() functions and
// by external plugin registrations at process start; read-only afterwards.
var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Spec)
	aliasIndex = make(map[string]*Spec)
	fallback   *Spec
)

// Register adds a spec to the registry under its canonical name and every
// alias. A malformed registration (nil spec, empty name) is logged and
// skipped so one bad plugin cannot prevent the rest from loading.
func Register(s *Spec) {
	if s == nil || s.name == "" {
		slog.Warn("ignoring malformed engine spec registration")
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[s.name] = s
	for _, a := range s.aliases {
		aliasIndex[strings.ToLower(a)] = s
	}
}

// SetFallback registers s and makes it the spec returned for unknown
// names. pkg/engines/generic installs itself here.
func SetFallback(s *Spec) {
	Register(s)
	registryMu.Lock()
	defer registryMu.Unlock()
	fallback = s
}

// Lookup returns the spec for a backend identifier, trying canonical names
// first, then aliases.
func Lookup(name string) (*Spec, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	key := strings.ToLower(name)
	if s, ok := registry[key]; ok {
		return s, true
	}
	if s, ok := aliasIndex[key]; ok {
		return s, true
	}
	return nil, false
}

// Get returns the spec for a backend identifier, or the generic fallback
// for unknown names. It never returns an error for unknown names; callers
// must handle generic behavior gracefully.
func Get(name string) *Spec {
	if s, ok := Lookup(name); ok {
		return s
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	return fallback
}

// List returns all registered canonical engine names, sorted.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
