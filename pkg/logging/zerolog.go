package logging

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// zlogger implements Logger on top of a zerolog.Logger
type zlogger struct {
	log    zerolog.Logger
	closer io.Closer
}

// New creates a logger writing to w in the given format
func New(w io.Writer, format Format, level Level) Logger {
	return newZlogger(w, format, level, nil)
}

// NewNullLogger creates a logger that discards all output
func NewNullLogger() Logger {
	return &zlogger{log: zerolog.Nop()}
}

func newZlogger(w io.Writer, format Format, level Level, closer io.Closer) *zlogger {
	if format == FormatText {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}
	log := zerolog.New(w).With().Timestamp().Logger().Level(zerologLevel(level))
	return &zlogger{log: log, closer: closer}
}

// Debug logs a debug message
func (l *zlogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Info logs an info message
func (l *zlogger) Info(ctx context.Context, msg string, fields Fields) {
	l.log.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Warn logs a warning message
func (l *zlogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log.Warn().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Error logs an error message
func (l *zlogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.log.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

// WithFields returns a logger with additional fields
func (l *zlogger) WithFields(fields Fields) Logger {
	return &zlogger{
		log:    l.log.With().Fields(map[string]interface{}(fields)).Logger(),
		closer: l.closer,
	}
}

// Close closes the underlying file, if any
func (l *zlogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
