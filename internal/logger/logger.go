// Package logger builds the zap logger used for diagnostics. Generated code
// goes to stdout, so log output is always written to stderr.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field names shared by the parser, generator and CLI.
const (
	FieldSeed      = "seed"
	FieldClass     = "class"
	FieldKind      = "kind"
	FieldMembers   = "members"
	FieldDepth     = "depth"
	FieldFile      = "file"
	FieldSize      = "size"
	FieldOperation = "operation"
)

// New returns a development logger at debug level when debug is set and a
// no-op logger otherwise.
func New(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return cfg.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
