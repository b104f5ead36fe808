package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rabbitai/sqlkit/pkg/engine"
)

// NewGrainsCommand creates the grains command.
func NewGrainsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "grains <engine>",
		Short: "Show the time grains offered by an engine",
		Long: `Show the effective time grain table for an engine, after applying the
configured addons and denylist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ConfigFrom(cmd.Context())
			spec := engine.Get(args[0])

			grains := spec.TimeGrains(cfg.EngineConfig())

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(grains)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Time grains for %s:\n", spec.EngineName())
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Duration", "Label", "Expression"})
			for _, g := range grains {
				name := g.Name
				if name == "" {
					name = "-"
				}
				t.AppendRow(table.Row{name, g.Label, g.Expression})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json")

	return cmd
}
