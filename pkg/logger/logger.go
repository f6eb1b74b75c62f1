package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger, initialised once from main. The
// no-op default keeps library code and tests safe before Init runs.
var Log = zap.NewNop()

// Init builds the global logger. Debug mode uses the development
// config (console encoder, DebugLevel), otherwise JSON at InfoLevel.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
