// Package logger wraps zap to provide structured logging for the service.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger holds the underlying zap logger.
type Logger struct {
	// Log is the configured zap logger. It is a no-op until Init is called.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap logger. Call Init to configure it.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init configures the logger with a production zap config at the given
// level ("debug", "info", "warn", "error"). Returns an error if the level
// is unknown or the logger cannot be built.
func (l *Logger) Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	log, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = log
	return nil
}
