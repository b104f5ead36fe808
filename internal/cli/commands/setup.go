// Package commands implements the sqlkit subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/rabbitai/sqlkit/internal/config"
)

type configKey struct{}
type loggerKey struct{}

// WithValues stores the loaded config and logger in the command context.
func WithValues(ctx context.Context, cfg *config.Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// ConfigFrom retrieves the config from the command context.
func ConfigFrom(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{RowLimit: config.DefaultRowLimit}
}

// LoggerFrom retrieves the logger from the command context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
