package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitializeLogger builds the process logger. Debug mode switches to the
// human-readable development encoder; level accepts any zapcore level name
// and falls back to info when it cannot be parsed.
func InitializeLogger(debug bool, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	if debug && lvl > zapcore.DebugLevel {
		lvl = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}
