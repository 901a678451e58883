package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zlog is the process-wide structured logger. InitLogger must run before the
// first request is served; until then Zlog is a no-op logger so package init
// order cannot panic.
var Zlog = zap.NewNop()

func InitLogger(level string, debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}

	Zlog = logger
	return nil
}
