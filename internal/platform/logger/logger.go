// Package logger builds the process zap logger from configuration.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/nulzo/autorouter/internal/cli"
	"github.com/nulzo/autorouter/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control how log lines are encoded.
type Options struct {
	Level       string // debug, info, warn, error
	Format      string // json, console
	EnableColor bool   // console only
}

// FromConfig derives Options from the log section, honouring NO_COLOR and LOG_COLOR.
func FromConfig(cfg config.LogConfig) Options {
	return Options{
		Level:       cfg.Level,
		Format:      strings.ToLower(cfg.Format),
		EnableColor: shouldEnableColor(),
	}
}

// New returns a logger writing to stdout.
func New(opts Options) *zap.Logger {
	return NewWithWriter(opts, os.Stdout)
}

// NewWithWriter returns a logger writing to w.
func NewWithWriter(opts Options, w io.Writer) *zap.Logger {
	level := parseLevel(opts.Level)
	core := zapcore.NewCore(newEncoder(opts), zapcore.AddSync(w), level)

	zapOpts := []zap.Option{zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if level == zapcore.DebugLevel {
		zapOpts = append(zapOpts, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(core, zapOpts...)
}

func newEncoder(opts Options) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	if opts.Format != "console" {
		return zapcore.NewJSONEncoder(ec)
	}

	ec.EncodeCaller = zapcore.ShortCallerEncoder
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	if !opts.EnableColor {
		return zapcore.NewConsoleEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cli.SetEnabled(true)
	return NewColoredConsoleEncoder(ec)
}

func parseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func shouldEnableColor() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	if val := os.Getenv("LOG_COLOR"); val != "" {
		return val == "true" || val == "1"
	}
	return true
}
