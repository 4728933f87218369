// Package log is a structured JSON logger on top of log/slog.
package log

import (
	"context"
	"io"
	"log/slog"
)

// Logger logs JSON lines through slog. The zero value is not usable; build
// one with NewLogger or Discard.
type Logger struct {
	slogger *slog.Logger
}

// NewLogger creates a Logger that writes records at or above level to
// writer, typically os.Stderr.
func NewLogger(writer io.Writer, level slog.Level) Logger {
	slogger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	return Logger{
		slogger: slogger,
	}
}

// Discard creates a Logger that drops every record.
func Discard() Logger {
	return NewLogger(io.Discard, slog.LevelError+1)
}

// IsInitialized reports whether the Logger was built with NewLogger or
// Discard.
func (l *Logger) IsInitialized() bool {
	return l.slogger != nil
}

// Enabled reports whether records at level are written.
func (l *Logger) Enabled(level slog.Level) bool {
	return l.slogger.Handler().Enabled(context.Background(), level)
}

// Info logs structured info message.
func (l *Logger) Info(msg string, keyVals ...KV) {
	l.slogger.Info(msg, kvToArgs(keyVals...)...)
}

// InfoNs logs structured info message with a namespace.
//
// The namespace is included as the first key-value pair ("ns") so logs
// from different parts can be told apart.
func (l *Logger) InfoNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Info(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Debug logs structured debug message.
func (l *Logger) Debug(msg string, keyVals ...KV) {
	l.slogger.Debug(msg, kvToArgs(keyVals...)...)
}

// DebugNs logs structured debug message with a namespace.
func (l *Logger) DebugNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Debug(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Warn logs structured warning message.
func (l *Logger) Warn(msg string, keyVals ...KV) {
	l.slogger.Warn(msg, kvToArgs(keyVals...)...)
}

// WarnNs logs structured warning message with a namespace.
func (l *Logger) WarnNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Warn(msg, kvToArgsNs(namespace, keyVals...)...)
}

// Error logs structured error message.
func (l *Logger) Error(msg string, keyVals ...KV) {
	l.slogger.Error(msg, kvToArgs(keyVals...)...)
}

// ErrorNs logs structured error message with a namespace.
func (l *Logger) ErrorNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Error(msg, kvToArgsNs(namespace, keyVals...)...)
}
