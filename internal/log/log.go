// Package log holds the process-wide zap logger. It is a no-op until Set is
// called.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var defaultLogger = zap.NewNop()

func Get() *zap.Logger {
	return defaultLogger
}

// Set replaces the default logger with a console logger at level writing to
// paths (stderr when none are given). The terminal editor passes a file path
// so log lines do not draw over the UI.
func Set(level zapcore.Level, paths ...string) error {
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      level == zapcore.DebugLevel,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      paths,
		ErrorOutputPaths: []string{"stderr"},
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	defaultLogger = l
	return nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func Flush() {
	_ = defaultLogger.Sync()
}
