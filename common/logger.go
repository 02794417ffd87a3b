package common

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Severity represents log message severity levels
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "DEBUG"
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity maps a level name as accepted on the command line.
func ParseSeverity(name string) (Severity, error) {
	switch name {
	case "debug", "DEBUG":
		return SeverityDebug, nil
	case "info", "INFO":
		return SeverityInfo, nil
	case "warn", "warning", "WARNING":
		return SeverityWarning, nil
	case "error", "ERROR":
		return SeverityError, nil
	}
	return SeverityInfo, fmt.Errorf("unknown log level %q", name)
}

func (s Severity) zerologLevel() zerolog.Level {
	switch s {
	case SeverityDebug:
		return zerolog.DebugLevel
	case SeverityInfo:
		return zerolog.InfoLevel
	case SeverityWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Logger interface defines the logging contract for the decoder
type Logger interface {
	// Log logs a message with the specified severity
	Log(severity Severity, msg string)

	// Logf logs a formatted message with the specified severity
	Logf(severity Severity, format string, args ...interface{})

	// Error logs an error
	Error(err error)

	// Debug logs a debug message
	Debug(msg string)

	// Info logs an info message
	Info(msg string)

	// Warning logs a warning message
	Warning(msg string)
}

// OrNoOp returns l, or a NoOpLogger when l is nil.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NewNoOpLogger()
	}
	return l
}

// ZeroLogger implements the Logger interface on top of zerolog
type ZeroLogger struct {
	log      zerolog.Logger
	minLevel Severity
}

// NewZeroLogger creates a logger writing one JSON object per line to w.
func NewZeroLogger(w io.Writer, minLevel Severity) *ZeroLogger {
	return newZeroLogger(zerolog.New(w), minLevel)
}

// NewConsoleLogger creates a human readable logger writing to w.
func NewConsoleLogger(w io.Writer, minLevel Severity, noColor bool) *ZeroLogger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: "15:04:05.000",
	}
	return newZeroLogger(zerolog.New(cw), minLevel)
}

func newZeroLogger(zl zerolog.Logger, minLevel Severity) *ZeroLogger {
	zl = zl.Level(minLevel.zerologLevel()).With().Timestamp().Logger()
	return &ZeroLogger{log: zl, minLevel: minLevel}
}

// With returns a child logger that adds key=value to every message.
func (l *ZeroLogger) With(key string, value interface{}) *ZeroLogger {
	return &ZeroLogger{
		log:      l.log.With().Interface(key, value).Logger(),
		minLevel: l.minLevel,
	}
}

// Zerolog exposes the underlying logger for structured call sites.
func (l *ZeroLogger) Zerolog() *zerolog.Logger {
	return &l.log
}

// Log logs a message with the specified severity
func (l *ZeroLogger) Log(severity Severity, msg string) {
	if severity < l.minLevel {
		return
	}
	l.log.WithLevel(severity.zerologLevel()).Msg(msg)
}

// Logf logs a formatted message with the specified severity
func (l *ZeroLogger) Logf(severity Severity, format string, args ...interface{}) {
	if severity < l.minLevel {
		return
	}
	l.log.WithLevel(severity.zerologLevel()).Msgf(format, args...)
}

// Error logs an error
func (l *ZeroLogger) Error(err error) {
	if err != nil {
		l.log.Error().Err(err).Msg("")
	}
}

// Debug logs a debug message
func (l *ZeroLogger) Debug(msg string) {
	l.Log(SeverityDebug, msg)
}

// Info logs an info message
func (l *ZeroLogger) Info(msg string) {
	l.Log(SeverityInfo, msg)
}

// Warning logs a warning message
func (l *ZeroLogger) Warning(msg string) {
	l.Log(SeverityWarning, msg)
}

// Elapsed logs how long an operation took at info level.
func (l *ZeroLogger) Elapsed(what string, start time.Time) {
	if SeverityInfo < l.minLevel {
		return
	}
	l.log.Info().Dur("elapsed", time.Since(start)).Msg(what)
}

// NoOpLogger is a logger that doesn't log anything
type NoOpLogger struct{}

// NewNoOpLogger creates a new no-op logger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Log does nothing
func (l *NoOpLogger) Log(severity Severity, msg string) {}

// Logf does nothing
func (l *NoOpLogger) Logf(severity Severity, format string, args ...interface{}) {}

// Error does nothing
func (l *NoOpLogger) Error(err error) {}

// Debug does nothing
func (l *NoOpLogger) Debug(msg string) {}

// Info does nothing
func (l *NoOpLogger) Info(msg string) {}

// Warning does nothing
func (l *NoOpLogger) Warning(msg string) {}
