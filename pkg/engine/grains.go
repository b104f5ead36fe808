package engine

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rabbitai/sqlkit/pkg/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// grainLabels maps the well-known grain tokens to their UI labels.
var grainLabels = map[string]string{
	"":      "Original value",
	"PT1S":  "Second",
	"PT5S":  "5 second",
	"PT30S": "30 second",
	"PT1M":  "Minute",
	"PT5M":  "5 minute",
	"PT10M": "10 minute",
	"PT15M": "15 minute",
	"PT30M": "30 minute",
	"PT1H":  "Hour",
	"PT6H":  "6 hour",
	"P1D":   "Day",
	"P1W":   "Week",
	"P1M":   "Month",
	"P3M":   "Quarter",
	"P1Y":   "Year",
	"1969-12-28T00:00:00Z/P1W": "Week starting Sunday",
	"1969-12-29T00:00:00Z/P1W": "Week starting Monday",
	"P1W/1970-01-03T00:00:00Z": "Week ending Saturday",
	"P1W/1970-01-04T00:00:00Z": "Week ending Sunday",
}

var labelCaser = cases.Title(language.English)

func grainLabel(token string) string {
	if label, ok := grainLabels[token]; ok {
		return label
	}
	// Addon grains may use arbitrary tokens like "five_minutes".
	return labelCaser.String(strings.ReplaceAll(strings.ToLower(token), "_", " "))
}

var (
	subDayRe = regexp.MustCompile(`^PT(\d+)([SMH])$`)
	dayUpRe  = regexp.MustCompile(`^P(\d+)([DWMY])$`)
)

// grainSortKey produces the composite ordering contract for grain lists:
// the no-op grain first, sub-day grains before day-and-up grains, grains
// ordered by increasing magnitude within their category, and week-boundary
// variants (start/end of week anchors) last. Unknown tokens sort after
// everything known, alphabetically.
func grainSortKey(token string) (category int, magnitude int64) {
	if token == "" {
		return 0, 0
	}
	if strings.Contains(token, "/") {
		return 3, 0
	}
	if m := subDayRe.FindStringSubmatch(token); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		switch m[2] {
		case "S":
			return 1, n
		case "M":
			return 1, n * 60
		default: // H
			return 1, n * 3600
		}
	}
	if m := dayUpRe.FindStringSubmatch(token); m != nil {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		switch m[2] {
		case "D":
			return 2, n
		case "W":
			return 2, n * 7
		case "M":
			return 2, n * 30
		default: // Y
			return 2, n * 365
		}
	}
	return 4, 0
}

// grainTable merges the built-in grain table with the config addons for
// this engine and removes denylisted tokens. Denylist entries absent from
// the merged table are ignored, and the no-op grain is never removable.
func (s *Spec) grainTable(cfg *Config) map[string]string {
	merged := make(map[string]string, len(s.grainIndex))
	for k, v := range s.grainIndex {
		merged[k] = v
	}
	for k, v := range cfg.addonsFor(s.name) {
		merged[k] = v
	}
	for token := range cfg.denied() {
		if token == "" {
			continue
		}
		delete(merged, token)
	}
	return merged
}

// TimeGrainExpressions returns the engine's effective grain table in the
// deterministic UI order. Calling it twice with the same config yields
// identical output.
func (s *Spec) TimeGrainExpressions(cfg *Config) []GrainExpr {
	merged := s.grainTable(cfg)
	out := make([]GrainExpr, 0, len(merged))
	for token, expr := range merged {
		out = append(out, GrainExpr{Grain: token, Expr: expr})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, mi := grainSortKey(out[i].Grain)
		cj, mj := grainSortKey(out[j].Grain)
		if ci != cj {
			return ci < cj
		}
		if mi != mj {
			return mi < mj
		}
		return out[i].Grain < out[j].Grain
	})
	return out
}

// TimeGrains returns the ordered grain list in the form consumed by
// grouping-by-time UI controls.
func (s *Spec) TimeGrains(cfg *Config) []core.TimeGrain {
	exprs := s.TimeGrainExpressions(cfg)
	out := make([]core.TimeGrain, 0, len(exprs))
	for _, g := range exprs {
		out = append(out, core.TimeGrain{
			Name:       g.Grain,
			Label:      grainLabel(g.Grain),
			Expression: g.Expr,
			Duration:   g.Grain,
		})
	}
	return out
}
