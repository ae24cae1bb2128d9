package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Level represents the severity of a log message
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// ParseLevel maps a config value (debug, info, warn, error) to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger provides structured logging on top of logrus.
// Loggers derived with WithField share output, level and format with their parent.
type Logger struct {
	entry    *logrus.Entry
	level    *atomic.Int32
	disabled *atomic.Bool
}

// New creates a new logger writing text lines to stderr at INFO
func New() *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(textFormatter())

	l := &Logger{
		entry:    logrus.NewEntry(base),
		level:    &atomic.Int32{},
		disabled: &atomic.Bool{},
	}
	l.level.Store(int32(LevelInfo))
	return l
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	l := New()
	l.SetOutput(io.Discard)
	l.Disable()
	return l
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	}
}

// SetOutput sets the output destination
func (l *Logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
	l.entry.Logger.SetLevel(level.logrus())
}

// Level returns the minimum log level
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// SetJSON enables or disables JSON output
func (l *Logger) SetJSON(enabled bool) {
	if enabled {
		l.entry.Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
		return
	}
	l.entry.Logger.SetFormatter(textFormatter())
}

// Disable disables all logging
func (l *Logger) Disable() { l.disabled.Store(true) }

// Enable enables logging
func (l *Logger) Enable() { l.disabled.Store(false) }

// WithField returns a new logger with an additional field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value), level: l.level, disabled: l.disabled}
}

// WithFields returns a new logger with additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields)), level: l.level, disabled: l.disabled}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.disabled.Load() {
		l.entry.Debugf(format, args...)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if !l.disabled.Load() {
		l.entry.Infof(format, args...)
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	if !l.disabled.Load() {
		l.entry.Warnf(format, args...)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	if !l.disabled.Load() {
		l.entry.Errorf(format, args...)
	}
}

var defaultLogger = New()

// Default returns the process-wide logger
func Default() *Logger { return defaultLogger }

// SetDefaultLevel sets the level for the default logger
func SetDefaultLevel(level Level) { defaultLogger.SetLevel(level) }

// SetDefaultJSON enables JSON output for the default logger
func SetDefaultJSON(enabled bool) { defaultLogger.SetJSON(enabled) }

// Debug logs a debug message using the default logger
func Debug(format string, args ...interface{}) { defaultLogger.Debug(format, args...) }

// Info logs an info message using the default logger
func Info(format string, args ...interface{}) { defaultLogger.Info(format, args...) }

// Warn logs a warning message using the default logger
func Warn(format string, args ...interface{}) { defaultLogger.Warn(format, args...) }

// Error logs an error message using the default logger
func Error(format string, args ...interface{}) { defaultLogger.Error(format, args...) }

// WithField returns a new logger with an additional field using the default logger
func WithField(key string, value interface{}) *Logger {
	return defaultLogger.WithField(key, value)
}

// WithFields returns a new logger with additional fields using the default logger
func WithFields(fields map[string]interface{}) *Logger {
	return defaultLogger.WithFields(fields)
}
