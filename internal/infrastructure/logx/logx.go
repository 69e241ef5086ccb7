package logx

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.Must(zap.NewProduction())

// Init rebuilds the package logger with the configured level. Safe to
// skip in tests; L falls back to a production logger.
func Init(level string) {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if level != "" {
		_ = cfg.Level.UnmarshalText([]byte(strings.ToLower(level)))
	}
	logger = zap.Must(cfg.Build(zap.AddCaller()))
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}
