// Package logger provides a simple logging interface for wifimon components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
package logger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zerologr"
)

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})

	// Named returns a logger scoped to a component (e.g. "sampler").
	Named(name string) Logger
}

// logrLogger adapts a logr.Logger to the Logger interface.
// Debug maps to V(1). logr has no warn level, so warnings go straight to
// zerolog when it is the sink, and are info entries carrying warn=true
// otherwise.
type logrLogger struct {
	l    logr.Logger
	name string
}

// FromLogr wraps an existing logr.Logger.
func FromLogr(l logr.Logger) Logger {
	return &logrLogger{l: l}
}

func (l *logrLogger) Debug(format string, args ...interface{}) {
	l.l.V(1).Info(fmt.Sprintf(format, args...))
}

func (l *logrLogger) Info(format string, args ...interface{}) {
	l.l.Info(fmt.Sprintf(format, args...))
}

func (l *logrLogger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if u, ok := l.l.GetSink().(zerologr.Underlier); ok {
		e := u.GetUnderlying().Warn()
		if l.name != "" && zerologr.NameFieldName != "" {
			e = e.Str(zerologr.NameFieldName, l.name)
		}
		e.Msg(msg)
		return
	}
	l.l.Info(msg, "warn", true)
}

func (l *logrLogger) Error(format string, args ...interface{}) {
	l.l.Error(nil, fmt.Sprintf(format, args...))
}

func (l *logrLogger) Named(name string) Logger {
	full := name
	if l.name != "" {
		full = l.name + zerologr.NameSeparator + name
	}
	return &logrLogger{l: l.l.WithName(name), name: full}
}

// Logr exposes the underlying logr.Logger for libraries that want one.
func (l *logrLogger) Logr() logr.Logger {
	return l.l
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}
func (l *noopLogger) Named(name string) Logger                 { return l }

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// Safe for use from the blinker goroutine; read Messages only after the
// code under test is done logging.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// Named returns the same buffer so scoped loggers share captured messages.
func (l *BufferLogger) Named(name string) Logger { return l }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Contains returns true if any message at the given level contains substr.
func (l *BufferLogger) Contains(level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level && strings.Contains(m.Message, substr) {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

// defaultLogger is the package-level default logger.
var defaultLogger Logger = Noop()

// Default returns the default logger for the package.
// Until SetDefault is called this discards everything.
func Default() Logger {
	return defaultLogger
}

// SetDefault sets the default logger for the package.
func SetDefault(l Logger) {
	defaultLogger = l
}
