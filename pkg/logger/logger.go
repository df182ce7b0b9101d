// Package logger builds the process-wide zap logger from the logging section
// of the configuration.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vzahanych/wx-gateway/internal/config"
)

// New constructs a *zap.Logger honoring the configured level, format
// (json or console) and optional output path.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.OutputPath != "" {
		zapCfg.OutputPaths = []string{cfg.OutputPath}
	}

	return zapCfg.Build()
}

// NewDevelopment is a convenience constructor for tests and local tooling.
func NewDevelopment() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}
