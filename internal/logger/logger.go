package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It starts as a no-op logger so packages
// and tests can log before Init runs.
var Log = zap.NewNop()

// Init installs a production logger at info level.
func Init() {
	if err := InitWithLevel("info", false); err != nil {
		// Production config with a known level cannot fail to parse.
		Log = zap.NewExample()
	}
}

// InitWithLevel installs a logger at the given level. Development mode uses
// the console encoder and stack traces on warnings.
func InitWithLevel(level string, development bool) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Log = l
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Log.Sync()
}
