// Package cli implements the palette command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"palette/internal/config"
	"palette/internal/engine"
	"palette/internal/logger"
)

// loadConfig reads the --config file, or the per-user file when the flag is empty
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.NewConfigService().Load()
	}
	return config.NewConfigServiceAt(path).LoadFromPath(path)
}

// newLogger builds the logger described by the logging settings.
// fallbackEnv replaces the configured environment when no log file is set, so
// interactive commands keep the terminal clean.
func newLogger(settings config.LoggingSettings, fallbackEnv string) (*zap.Logger, error) {
	env := settings.Env
	var opts []logger.Option
	if settings.Level != "" {
		opts = append(opts, logger.WithLevel(settings.Level))
	}
	if settings.File != "" {
		opts = append(opts, logger.WithOutput(settings.File))
	} else if fallbackEnv != "" {
		env = fallbackEnv
	}
	l, err := logger.NewLogger(env, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

// engineOptions maps the engine settings onto engine options
func engineOptions(cfg *config.Config) ([]engine.Option, error) {
	s, err := cfg.Scorer()
	if err != nil {
		return nil, err
	}
	return []engine.Option{
		engine.WithScorer(s),
		engine.WithShouldFilter(cfg.Engine.ShouldFilter),
		engine.WithLoop(cfg.Engine.Loop),
	}, nil
}

// newEngine builds an engine over the configured catalog
func newEngine(cfg *config.Config, extra ...engine.Option) (*engine.Engine, error) {
	opts, err := engineOptions(cfg)
	if err != nil {
		return nil, err
	}
	e := engine.New(append(opts, extra...)...)
	cfg.Catalog.Register(e, nil)
	e.Flush()
	return e, nil
}
