// Package logger defines the logging interface used across the application and its slog backend.
package logger

import (
	"io"
	"log/slog"
)

// AppLogger defines the contract for logging in the application.
type AppLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a new logger with the given key-value pairs added to its context.
	With(args ...any) AppLogger
}

// slogAdapter implements AppLogger on top of *slog.Logger.
type slogAdapter struct {
	adaptee *slog.Logger
}

// NewSlogAdapter wraps l. A nil l uses slog.Default().
func NewSlogAdapter(l *slog.Logger) AppLogger {
	if l == nil {
		l = slog.Default()
	}
	return &slogAdapter{adaptee: l}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() AppLogger {
	return NewSlogAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *slogAdapter) Debug(msg string, args ...any) { s.adaptee.Debug(msg, args...) }
func (s *slogAdapter) Info(msg string, args ...any)  { s.adaptee.Info(msg, args...) }
func (s *slogAdapter) Warn(msg string, args ...any)  { s.adaptee.Warn(msg, args...) }
func (s *slogAdapter) Error(msg string, args ...any) { s.adaptee.Error(msg, args...) }

func (s *slogAdapter) With(args ...any) AppLogger {
	return &slogAdapter{adaptee: s.adaptee.With(args...)}
}
