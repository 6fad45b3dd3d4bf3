// Package logging configures xmk's structured logger. -v maps to info
// level, -vv to debug level; with neither flag set the logger is a no-op
// so the build engine's trace calls cost nothing.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.SugaredLogger tuned for CLI output: no timestamps, no
// caller info, no level tag, just the message, written to stdout.
func New(verbose, veryVerbose bool) *zap.SugaredLogger {
	if !verbose && !veryVerbose {
		return zap.NewNop().Sugar()
	}

	level := zapcore.InfoLevel
	if veryVerbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.LevelKey = ""
	encoder := zapcore.NewConsoleEncoder(cfg)

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stdout())), level)
	return zap.New(core).Sugar()
}
