package commands

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rabbitai/sqlkit/internal/drivers"
	"github.com/rabbitai/sqlkit/pkg/engine"
)

// EngineInfo is the JSON output for one registered engine.
type EngineInfo struct {
	Name        string   `json:"name"`
	EngineName  string   `json:"engine_name"`
	Aliases     []string `json:"aliases,omitempty"`
	LimitMethod string   `json:"limit_method"`
	DefaultPort int      `json:"default_port,omitempty"`
	Driver      string   `json:"driver,omitempty"`
}

// NewEnginesCommand creates the engines command.
func NewEnginesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "engines",
		Short: "List registered engines and their driver availability",
		RunE: func(cmd *cobra.Command, _ []string) error {
			driverFor := make(map[string]string)
			for _, st := range drivers.Available() {
				driverFor[st.Engine] = st.Driver
			}

			var infos []EngineInfo
			for _, name := range engine.List() {
				spec := engine.Get(name)
				infos = append(infos, EngineInfo{
					Name:        name,
					EngineName:  spec.EngineName(),
					Aliases:     spec.Aliases(),
					LimitMethod: spec.LimitMethod().String(),
					DefaultPort: spec.DefaultPort(),
					Driver:      driverFor[name],
				})
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Engine", "Aliases", "Limit", "Port", "Driver"})
			for _, info := range infos {
				driver := info.Driver
				if driver == "" {
					driver = "-"
				}
				port := ""
				if info.DefaultPort > 0 {
					port = strconv.Itoa(info.DefaultPort)
				}
				t.AppendRow(table.Row{
					info.Name,
					info.EngineName,
					strings.Join(info.Aliases, ", "),
					info.LimitMethod,
					port,
					driver,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json")

	return cmd
}
