// Package logger builds the process-wide zap logger for the linked-data
// service.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "nldi"

// New builds the named service logger. Production output is JSON on stdout
// with ISO8601 timestamps; the debug level switches to a colored console
// encoder. An unknown level falls back to info instead of failing startup,
// since a typo in the config should not take the service down.
func New(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		zapLevel = zapcore.InfoLevel
	}

	var cfg zap.Config
	if zapLevel == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapLevel)
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.Sampling = nil
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(serviceName), nil
}
