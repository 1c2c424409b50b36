// Package debug provides opt-in diagnostic logging built on log/slog.
// Logging is disabled until Init is called with enable=true, so library
// code can log unconditionally without polluting normal CLI output.
package debug

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	logger  = slog.New(discardHandler{})
	enabled bool
)

// Init configures the package logger. With enable=true, records at debug
// level and above go to stderr as text; otherwise everything is discarded.
func Init(enable bool) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enable {
		logger = slog.New(discardHandler{})
		return
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// Enabled reports whether diagnostic logging is active.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Stage returns a child logger tagged with a pipeline stage name, e.g.
// "loader", "validation", "openapi".
func Stage(name string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With(slog.String("stage", name))
}

// Debug logs at debug level on the package logger.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs at info level on the package logger.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs at warn level on the package logger.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs at error level on the package logger.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// discardHandler drops every record. Cheaper than a leveled stderr handler
// when logging is off.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
