package log

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging interface shared by all guard components.
type Logger interface {
	Info(fields map[string]any, msg string)
	Error(fields map[string]any, msg string)
	Debug(fields map[string]any, msg string)
	Warn(fields map[string]any, msg string)
	Panic(fields map[string]any, msg string)
	Fatal(fields map[string]any, msg string)
}

var global Logger = newZap("prod", zapcore.InfoLevel)

// SetLogger replaces the global logger instance.
func SetLogger(l Logger) { global = l }

// GetLogger returns the current global logger instance.
func GetLogger() Logger { return global }

// Configure installs a zap-backed global logger. env "prod" selects the JSON
// production encoder; anything else gets the colored development encoder.
func Configure(env, level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	global = newZap(env, lvl)
	return nil
}

// OrNoop returns l, or a no-op logger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NewNoopLogger()
	}
	return l
}

// With returns a Logger that adds fields to every entry written through l.
// Fields passed at the call site win over the bound ones.
func With(l Logger, fields map[string]any) Logger {
	if len(fields) == 0 {
		return OrNoop(l)
	}
	bound := make(map[string]any, len(fields))
	for k, v := range fields {
		bound[k] = v
	}
	return &boundLogger{next: OrNoop(l), fields: bound}
}

func Info(fields map[string]any, msg string)  { global.Info(fields, msg) }
func Error(fields map[string]any, msg string) { global.Error(fields, msg) }
func Debug(fields map[string]any, msg string) { global.Debug(fields, msg) }
func Warn(fields map[string]any, msg string)  { global.Warn(fields, msg) }
func Panic(fields map[string]any, msg string) { global.Panic(fields, msg) }
func Fatal(fields map[string]any, msg string) { global.Fatal(fields, msg) }

// zapLogger writes every level through a single checked-entry path.
type zapLogger struct {
	base *zap.Logger
}

func newZap(env string, level zapcore.Level) Logger {
	cfg := zap.NewProductionConfig()
	if env != "prod" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "msg"
	cfg.EncoderConfig.LevelKey = "level"

	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	return &zapLogger{base: base}
}

func (l *zapLogger) write(lvl zapcore.Level, fields map[string]any, msg string) {
	// Check handles the panic and exit hooks for the two terminal levels.
	if ce := l.base.Check(lvl, msg); ce != nil {
		ce.Write(zapFields(fields)...)
	}
}

func (l *zapLogger) Info(f map[string]any, msg string)  { l.write(zapcore.InfoLevel, f, msg) }
func (l *zapLogger) Error(f map[string]any, msg string) { l.write(zapcore.ErrorLevel, f, msg) }
func (l *zapLogger) Debug(f map[string]any, msg string) { l.write(zapcore.DebugLevel, f, msg) }
func (l *zapLogger) Warn(f map[string]any, msg string)  { l.write(zapcore.WarnLevel, f, msg) }
func (l *zapLogger) Panic(f map[string]any, msg string) { l.write(zapcore.PanicLevel, f, msg) }
func (l *zapLogger) Fatal(f map[string]any, msg string) { l.write(zapcore.FatalLevel, f, msg) }

// zapFields converts fields in key order so encoded output is stable.
func zapFields(m map[string]any) []zap.Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, m[k]))
	}
	return out
}

type boundLogger struct {
	next   Logger
	fields map[string]any
}

func (b *boundLogger) merge(fields map[string]any) map[string]any {
	out := make(map[string]any, len(b.fields)+len(fields))
	for k, v := range b.fields {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func (b *boundLogger) Info(f map[string]any, msg string)  { b.next.Info(b.merge(f), msg) }
func (b *boundLogger) Error(f map[string]any, msg string) { b.next.Error(b.merge(f), msg) }
func (b *boundLogger) Debug(f map[string]any, msg string) { b.next.Debug(b.merge(f), msg) }
func (b *boundLogger) Warn(f map[string]any, msg string)  { b.next.Warn(b.merge(f), msg) }
func (b *boundLogger) Panic(f map[string]any, msg string) { b.next.Panic(b.merge(f), msg) }
func (b *boundLogger) Fatal(f map[string]any, msg string) { b.next.Fatal(b.merge(f), msg) }

type noopLogger struct{}

func (noopLogger) Info(map[string]any, string)  {}
func (noopLogger) Error(map[string]any, string) {}
func (noopLogger) Debug(map[string]any, string) {}
func (noopLogger) Warn(map[string]any, string)  {}
func (noopLogger) Panic(map[string]any, string) {}
func (noopLogger) Fatal(map[string]any, string) {}

// NewNoopLogger returns a Logger that discards all log messages.
func NewNoopLogger() Logger { return noopLogger{} }
