package solarfx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger formats printf-style messages and hands them to slog.
// The level is held in a LevelVar so debug output can be toggled at runtime.
type DefaultLogger struct {
	level *slog.LevelVar
	log   *slog.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLoggerWithWriter(os.Stderr, prefix, debug)
}

func NewLoggerWithWriter(w io.Writer, prefix string, debug bool) *DefaultLogger {
	level := new(slog.LevelVar)
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if prefix != "" {
		l = l.With("module", prefix)
	}
	logger := &DefaultLogger{level: level, log: l}
	logger.SetDebug(debug)
	return logger
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.level.Level() <= slog.LevelDebug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.Set(slog.LevelDebug)
	} else {
		l.level.Set(slog.LevelInfo)
	}
}

func (l *DefaultLogger) logf(level slog.Level, format string, args ...any) {
	ctx := context.Background()
	if !l.log.Enabled(ctx, level) {
		return
	}
	l.log.Log(ctx, level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.logf(slog.LevelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.logf(slog.LevelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.logf(slog.LevelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.logf(slog.LevelError, format, args...) }

// Slog exposes the underlying logger for code that logs with attributes.
func (l *DefaultLogger) Slog() *slog.Logger { return l.log }

// LoggingModule installs a default logger as a resource.
type LoggingModule struct {
	Prefix string
	Debug  bool
	// Output defaults to stderr.
	Output io.Writer
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	out := m.Output
	if out == nil {
		out = os.Stderr
	}
	cmd.AddResources(NewLoggerWithWriter(out, m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
