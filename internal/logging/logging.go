// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the encoder.
type Format string

const (
	FormatConsole Format = "CONSOLE"
	FormatJSON    Format = "JSON"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "FORMBUILDER_LOG_LEVEL"
	EnvFormat = "FORMBUILDER_LOG_FORMAT"
)

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a zap level.
// Anything else is INFO.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseFormat returns FormatJSON for "json" in any case and FormatConsole
// otherwise.
func ParseFormat(format string) Format {
	if strings.EqualFold(strings.TrimSpace(format), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatConsole
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05 MST"))
}

// New returns a logger writing to w. A nil w means stderr so rendered output
// on stdout stays clean.
func New(level string, format Format, w io.Writer) *zap.Logger {
	if w == nil {
		w = os.Stderr
	}

	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if format == FormatJSON {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeTime = timeEncoder
		cfg.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core, zap.AddCaller())
}

// FromEnv builds a logger from FORMBUILDER_LOG_LEVEL and
// FORMBUILDER_LOG_FORMAT.
func FromEnv(w io.Writer) *zap.Logger {
	return New(os.Getenv(EnvLevel), ParseFormat(os.Getenv(EnvFormat)), w)
}
