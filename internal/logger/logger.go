// Package logger builds the zap loggers used by the qsift command and server.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr, leaving stdout to query output.
func New(jsonOutput, verbose bool) *zap.SugaredLogger {
	return NewWithWriter(os.Stderr, jsonOutput, verbose)
}

// NewWithWriter returns a logger writing to w. JSON output uses zap's
// production encoding for machines; otherwise a plain console encoding is
// used. Verbose lowers the level from info to debug.
func NewWithWriter(w io.Writer, jsonOutput, verbose bool) *zap.SugaredLogger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		config := zap.NewDevelopmentEncoderConfig()
		config.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		config.EncodeCaller = nil
		encoder = zapcore.NewConsoleEncoder(config)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
