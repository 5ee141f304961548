package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/harrisonog/arcraiders-go/internal/infrastructure/config"
)

// NewLogger builds a zap logger from the logging configuration
func NewLogger(cfg *config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.DisableCaller = !cfg.IncludeCaller
	zapCfg.DisableStacktrace = !cfg.IncludeStacktrace
	zapCfg.OutputPaths = []string{cfg.Output}
	zapCfg.ErrorOutputPaths = []string{cfg.Output}

	if cfg.Format == "text" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// NewNopLogger returns a logger that discards everything, for tests
func NewNopLogger() *zap.Logger {
	return zap.NewNop()
}
