// Package observability builds the structured loggers shared by the game binaries.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/delve/internal/config"
)

// NewLogger creates a structured logger from the logging configuration.
// Every entry carries a "component" field naming the binary.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig, component string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	zapCfg, err := baseConfig(cfg.Format)
	if err != nil {
		return nil, err
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	out := outputOf(cfg)
	zapCfg.OutputPaths = []string{out}
	if cfg.Format == "console" && (out == "stderr" || out == "stdout") {
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	if component != "" {
		zapCfg.InitialFields = map[string]any{"component": component}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building %s logger for %s: %w", cfg.Format, out, err)
	}
	return logger, nil
}

// baseConfig picks the zap preset for format. Console output carries no
// warn-level stack traces. JSON output is never sampled.
func baseConfig(format string) (zap.Config, error) {
	switch format {
	case "json":
		c := zap.NewProductionConfig()
		c.Sampling = nil
		return c, nil
	case "console":
		c := zap.NewDevelopmentConfig()
		c.DisableStacktrace = true
		return c, nil
	}
	return zap.Config{}, fmt.Errorf("unknown log format %q", format)
}

func outputOf(cfg config.LoggingConfig) string {
	if cfg.Output == "" {
		return "stderr"
	}
	return cfg.Output
}
