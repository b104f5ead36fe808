package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rabbitai/sqlkit/pkg/engine"
	"github.com/rabbitai/sqlkit/pkg/virtual"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	var engineName string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check SQL against the virtual dataset gate",
		Long: `Check that SQL is a single read-only statement under an engine's rules,
the same gate applied before virtual dataset execution. Reads from stdin
when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			spec := engine.Get(engineName)
			if errs := virtual.Validate(spec, input); errs != nil {
				enc := json.NewEncoder(cmd.ErrOrStderr())
				enc.SetIndent("", "  ")
				_ = enc.Encode(errs)
				return fmt.Errorf("validation failed")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	cmd.Flags().StringVarP(&engineName, "engine", "e", "generic", "Engine name or alias")

	return cmd
}
