package logger

import (
	"sync"
)

// Log levels accepted in config (log.level).
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings accepted in config (log.format).
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. Only the first call's level and format are applied.
func Get(level string, format ...string) *Logger {
	once.Do(func() {
		f := FormatConsole
		if len(format) > 0 && format[0] != "" {
			f = format[0]
		}
		globalLogger = New(level, f)
	})
	return globalLogger
}

// Nop returns a logger that discards everything. Used by tests and optional collaborators.
func Nop() *Logger {
	return newNopLogger()
}
