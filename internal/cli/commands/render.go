package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rabbitai/sqlkit/pkg/template"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Engine    string
	Params    map[string]string
	URLParams map[string]string
	UserID    int
	Username  string
	ShowCache bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Expand a SQL template in the sandboxed environment",
		Long: `Expand a Jinja-style SQL template with the built-in macros and the
engine's own macro namespace. Reads from stdin when no file is given.`,
		Example: `  # Render a template for Trino with a URL parameter
  sqlkit render query.sql --engine trino --url-param region=emea

  # Render from stdin
  echo "SELECT * FROM t WHERE id = {{ current_user_id() }}" | sqlkit render --engine postgresql --user-id 42`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Engine, "engine", "e", "generic", "Engine name or alias")
	cmd.Flags().StringToStringVarP(&opts.Params, "param", "p", nil, "Extra context values (key=value)")
	cmd.Flags().StringToStringVar(&opts.URLParams, "url-param", nil, "Request URL parameters (key=value)")
	cmd.Flags().IntVar(&opts.UserID, "user-id", 0, "Identity for current_user_id()")
	cmd.Flags().StringVar(&opts.Username, "username", "", "Identity for current_username()")
	cmd.Flags().BoolVar(&opts.ShowCache, "show-cache-keys", false, "Print recorded cache key contributors")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	cfg := ConfigFrom(cmd.Context())
	log := LoggerFrom(cmd.Context())

	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	req := &template.RequestContext{
		UserID:    opts.UserID,
		Username:  opts.Username,
		URLParams: opts.URLParams,
	}

	extra := make(map[string]any, len(opts.Params))
	for k, v := range opts.Params {
		extra[k] = v
	}

	log.Debug("rendering template", "engine", opts.Engine, "bytes", len(input))

	rendered, err := template.Process(input, opts.Engine, req, cfg.EngineConfig(), extra)
	if err != nil {
		coreErr := template.CoreError(err)
		enc := json.NewEncoder(cmd.ErrOrStderr())
		enc.SetIndent("", "  ")
		_ = enc.Encode(coreErr)
		return fmt.Errorf("template rendering failed")
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(rendered, "\n"))

	if opts.ShowCache && len(req.CacheKeyParts) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "cache key contributors: %v\n", req.CacheKeyParts)
	}

	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read template: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
