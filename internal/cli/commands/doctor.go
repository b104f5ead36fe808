package commands

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rabbitai/sqlkit/internal/config"
	"github.com/rabbitai/sqlkit/pkg/core"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// maxProbeConcurrency bounds parallel connection probes.
const maxProbeConcurrency = 8

// ConnectionCheck is the result of probing one configured database.
type ConnectionCheck struct {
	Name    string        `json:"name"`
	Engine  string        `json:"engine"`
	Status  string        `json:"status"` // "ok", "warn", "error"
	Errors  []*core.Error `json:"errors,omitempty"`
	Details string        `json:"details,omitempty"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Probe every configured database connection",
		Long: `Validate the connection parameters of every database in the config:
required fields, hostname resolution, port range and port reachability.
Probes run concurrently; each failure is reported through the structured
error taxonomy.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd.Context())
			log := LoggerFrom(cmd.Context())

			if len(cfg.Databases) == 0 {
				cmd.Println("No databases configured.")
				return nil
			}

			checks := probeConnections(cfg, log)

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(checks)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Database", "Engine", "Status", "Details"})
			for _, check := range checks {
				t.AppendRow(table.Row{check.Name, check.Engine, check.Status, check.Details})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json")

	return cmd
}

func probeConnections(cfg *config.Config, log *slog.Logger) []ConnectionCheck {
	names := make([]string, 0, len(cfg.Databases))
	for name := range cfg.Databases {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := make([]ConnectionCheck, len(names))

	var g errgroup.Group
	g.SetLimit(maxProbeConcurrency)
	for i, name := range names {
		g.Go(func() error {
			db := cfg.Databases[name]
			spec := engine.Get(db.Engine)
			log.Debug("probing connection", "database", name, "engine", spec.Name())

			check := ConnectionCheck{Name: name, Engine: spec.Name()}

			params := *db.Parameters()
			if db.URI != "" && spec.SupportsParameters() {
				if p, err := spec.ParametersFromURI(db.URI); err == nil {
					params = p
				}
			}

			errs := spec.ValidateParameters(params)
			switch {
			case errs == nil:
				check.Status = "ok"
			case errs[0].Level == core.SeverityWarning:
				check.Status = "warn"
				check.Errors = errs
				check.Details = summarize(errs)
			default:
				check.Status = "error"
				check.Errors = errs
				check.Details = summarize(errs)
			}

			checks[i] = check
			return nil
		})
	}
	_ = g.Wait()

	return checks
}

func summarize(errs []*core.Error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}
