package internal

import (
	"log"
	"os"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger provides leveled logging scoped to a component
type Logger struct {
	level LogLevel
	scope string
}

// NewLogger creates a logger for a component at the specified level
func NewLogger(scope string, level LogLevel) *Logger {
	return &Logger{level: level, scope: scope}
}

// NewDefaultLogger creates a logger based on the LOG_LEVEL environment variable
func NewDefaultLogger(scope string) *Logger {
	level := LogLevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LogLevelError
	case "WARN":
		level = LogLevelWarn
	case "DEBUG":
		level = LogLevelDebug
	}
	return &Logger{level: level, scope: scope}
}

// With returns a logger for a sub-component at the same level
func (l *Logger) With(scope string) *Logger {
	return &Logger{level: l.level, scope: l.scope + "." + scope}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		log.Printf("[ERROR] "+l.scope+": "+format, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		log.Printf("[WARN] "+l.scope+": "+format, args...)
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		log.Printf("[INFO] "+l.scope+": "+format, args...)
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		log.Printf("[DEBUG] "+l.scope+": "+format, args...)
	}
}
