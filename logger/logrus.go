package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusLogger implements Logger on top of logrus.
type LogrusLogger struct {
	base *logrus.Logger
}

// NewLogrusLogger creates a logger writing to stderr at the given level.
// Unknown levels fall back to info. format is "text" or "json".
func NewLogrusLogger(level, format string) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return &LogrusLogger{base: l}
}

// New wraps an existing logrus logger.
func New(base *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{base: base}
}

// NewTestLogger returns a logger that discards all output.
func NewTestLogger() *LogrusLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &LogrusLogger{base: l}
}

func (l *LogrusLogger) entry(ctx context.Context, fields map[string]interface{}) *logrus.Entry {
	e := logrus.NewEntry(l.base)
	if ctx != nil {
		e = e.WithContext(ctx)
	}
	if len(fields) > 0 {
		e = e.WithFields(logrus.Fields(fields))
	}
	return e
}

// Debug logs a message at debug level.
func (l *LogrusLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.entry(ctx, fields).Debug(msg)
}

// Info logs a message at info level.
func (l *LogrusLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.entry(ctx, fields).Info(msg)
}

// Warn logs a message at warn level.
func (l *LogrusLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.entry(ctx, fields).Warn(msg)
}

// Error logs a message at error level.
func (l *LogrusLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.entry(ctx, fields).Error(msg)
}
