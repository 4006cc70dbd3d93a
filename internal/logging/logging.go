// Package logging wraps log/slog with named loggers and a process-wide level.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Logger is the structured logging interface used across agentfolio.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	Named(name string) Logger
}

// Field is a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// Field constructors.
func String(key, val string) Field          { return Field{Key: key, Value: val} }
func Int(key string, val int) Field         { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field { return Field{Key: key, Value: val} }
func Bool(key string, val bool) Field       { return Field{Key: key, Value: val} }
func Any(key string, val any) Field         { return Field{Key: key, Value: val} }
func Err(err error) Field                   { return Field{Key: "error", Value: err} }

type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Named(name string) Logger {
	return &slogLogger{logger: l.logger.With(slog.String("component", name))}
}

func (l *slogLogger) Debug(msg string, fields ...Field) {
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, convertFields(fields)...)
}

func (l *slogLogger) Info(msg string, fields ...Field) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, msg, convertFields(fields)...)
}

func (l *slogLogger) Warn(msg string, fields ...Field) {
	l.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, convertFields(fields)...)
}

func (l *slogLogger) Error(msg string, fields ...Field) {
	l.logger.LogAttrs(context.Background(), slog.LevelError, msg, convertFields(fields)...)
}

func convertFields(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, len(fields))
	for i, f := range fields {
		attrs[i] = slog.Any(f.Key, f.Value)
	}
	return attrs
}

var (
	mu       sync.RWMutex
	global   Logger
	levelVar slog.LevelVar
)

// Init installs the global logger writing text records to w.
// Verbose lowers the level to debug; otherwise only warnings and errors are shown.
func Init(w io.Writer, verbose bool) {
	if w == nil {
		w = os.Stderr
	}
	if verbose {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelWarn)
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: &levelVar})

	mu.Lock()
	global = &slogLogger{logger: slog.New(h)}
	mu.Unlock()
}

// Get returns the global logger, initializing a stderr logger on first use.
func Get() Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(os.Stderr, false)
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Named creates a named logger.
func Named(name string) Logger {
	return Get().Named(name)
}

// SetLevelString changes the level at runtime. Unknown names leave it unchanged.
func SetLevelString(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		levelVar.Set(slog.LevelDebug)
	case "info":
		levelVar.Set(slog.LevelInfo)
	case "warn", "warning":
		levelVar.Set(slog.LevelWarn)
	case "error":
		levelVar.Set(slog.LevelError)
	default:
		return false
	}
	return true
}
