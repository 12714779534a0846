package utils

import (
	"log"
	"sync"

	"shiftdesk/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process logger. Use GetLogger.
var Logger *zap.Logger

var loggerOnce sync.Once

// NewLogger builds a JSON logger for production and a colored console logger otherwise.
// A parseable level overrides the environment default (info in production, debug elsewhere).
func NewLogger(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if level != "" {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	return cfg.Build()
}

// GetLogger returns the process logger, building it from config.AppConfig on first use.
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		if Logger != nil {
			return
		}
		l, err := NewLogger(config.GetEnv(), config.AppConfig.LogLevel)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		Logger = l
	})
	return Logger
}
