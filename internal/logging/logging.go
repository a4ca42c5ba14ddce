// Package logging holds the process-wide structured logger.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It discards everything until Initialize is
// called.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Level returns the level used for a verbosity setting: warnings and
// errors only by default, everything down to debug when verbose.
func Level(verbose bool) zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// Initialize replaces the global logger. Console output goes to stderr so
// that generated code printed on stdout stays clean.
func Initialize(verbose, jsonOutput bool) error {
	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(Level(verbose))
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		l, err := config.Build()
		if err != nil {
			return err
		}
		Logger = l.Sugar()
		return nil
	}
	Logger = New(os.Stderr, Level(verbose))
	return nil
}

// New returns a console logger writing to w at level.
func New(w io.Writer, level zapcore.Level) *zap.SugaredLogger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// Sync flushes buffered entries. Errors from syncing a terminal are
// ignored.
func Sync() {
	_ = Logger.Sync()
}
