// Package logger builds the zap loggers used across the palette binaries.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option adjusts the zap configuration before the logger is built
type Option func(*zap.Config) error

// WithLevel overrides the log level: debug, info, warn, error
func WithLevel(level string) Option {
	return func(cfg *zap.Config) error {
		if level == "" {
			return nil
		}
		var l zapcore.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(l)
		return nil
	}
}

// WithOutput sends log output to path instead of stderr.
// The terminal UI uses it to keep log lines off the screen.
func WithOutput(path string) Option {
	return func(cfg *zap.Config) error {
		if path == "" {
			return nil
		}
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
		if cfg.Encoding == "console" {
			// no escape codes in files
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
		return nil
	}
}

// NewLogger creates a zap logger for the given environment.
// prod uses JSON output, local/dev use colored console output, none discards everything.
func NewLogger(env string, opts ...Option) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "none":
		return zap.NewNop(), nil
	case "prod":
		cfg = zap.NewProductionConfig()
	case "local", "dev":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	l, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}
