// Package logger provides the structured application logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Level represents the severity level of a log message
type Level string

const (
	// DebugLevel is used for development messages
	DebugLevel Level = "DEBUG"
	// InfoLevel is used for general operational information
	InfoLevel Level = "INFO"
	// WarnLevel is used for warnings and potential issues
	WarnLevel Level = "WARN"
	// ErrorLevel is used for errors and unexpected events
	ErrorLevel Level = "ERROR"
	// FatalLevel is used for critical errors that require termination
	FatalLevel Level = "FATAL"
)

// ParseLevel maps a config string such as "debug" or "warn" onto a Level,
// defaulting to InfoLevel for anything unrecognized.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "FATAL":
		return FatalLevel
	default:
		return InfoLevel
	}
}

func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger defines the interface for the application logger
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Fatal(msg string, fields map[string]interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// ZerologLogger is a Logger backed by zerolog, emitting one JSON object
// per entry.
type ZerologLogger struct {
	zl zerolog.Logger
}

// New creates a logger writing JSON entries to output at the given level.
func New(output io.Writer, level Level) *ZerologLogger {
	if output == nil {
		output = os.Stdout
	}

	zl := zerolog.New(output).Level(level.zerologLevel()).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

// WithField returns a new logger with the field added to the log context
func (l *ZerologLogger) WithField(key string, value interface{}) Logger {
	return &ZerologLogger{zl: l.zl.With().Interface(key, value).Logger()}
}

// WithFields returns a new logger with the fields added to the log context
func (l *ZerologLogger) WithFields(fields map[string]interface{}) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZerologLogger{zl: l.zl.With().Fields(fields).Logger()}
}

// Debug logs a message at debug level
func (l *ZerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

// Info logs a message at info level
func (l *ZerologLogger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info().Fields(fields).Msg(msg)
}

// Warn logs a message at warn level
func (l *ZerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

// Error logs a message at error level
func (l *ZerologLogger) Error(msg string, fields map[string]interface{}) {
	l.zl.Error().Fields(fields).Msg(msg)
}

// Fatal logs a message at fatal level and then terminates the program
func (l *ZerologLogger) Fatal(msg string, fields map[string]interface{}) {
	l.zl.Fatal().Fields(fields).Msg(msg)
}

// Default logger instance
var defaultLogger Logger = New(os.Stdout, InfoLevel)

// GetDefaultLogger returns the default logger
func GetDefaultLogger() Logger {
	return defaultLogger
}

// SetDefaultLogger sets the default logger
func SetDefaultLogger(logger Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
