// Package utils holds small shared helpers for the engine packages.
package utils

import (
	"log"
)

// Logger is a minimal leveled logger. Debug and Info are suppressed unless
// verbose; warnings and errors always print.
type Logger struct {
	prefix  string
	verbose bool
}

// NewLogger creates a logger without a component prefix.
func NewLogger(verbose bool) *Logger {
	return &Logger{verbose: verbose}
}

// Named returns a logger whose lines carry a component prefix.
func (l *Logger) Named(component string) *Logger {
	return &Logger{prefix: component + ": ", verbose: l.verbose}
}

// Info logs an informational message when verbose.
func (l *Logger) Info(format string, args ...any) {
	if l.verbose {
		log.Printf("[INFO] "+l.prefix+format, args...)
	}
}

// Debug logs a debug message when verbose.
func (l *Logger) Debug(format string, args ...any) {
	if l.verbose {
		log.Printf("[DEBUG] "+l.prefix+format, args...)
	}
}

// Warning logs a warning message.
func (l *Logger) Warning(format string, args ...any) {
	log.Printf("[WARNING] "+l.prefix+format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	log.Printf("[ERROR] "+l.prefix+format, args...)
}
