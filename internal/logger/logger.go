// Package logger provides the process-wide logger for crisper.
// Messages go to stderr so they never corrupt the TUI alternate
// screen; verbose mode lowers the threshold to debug.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu  sync.RWMutex
	std = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	if v {
		std.SetLevel(log.DebugLevel)
	} else {
		std.SetLevel(log.InfoLevel)
	}
}

// IsVerbose returns true if debug output is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return std.GetLevel() <= log.DebugLevel
}

// SetOutput sets the log destination. Defaults to os.Stderr.
// Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, keyvals ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Debug(msg, keyvals...)
}

// Info logs an informational message with optional key-value pairs.
func Info(msg string, keyvals ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Info(msg, keyvals...)
}

// Warn logs a warning with optional key-value pairs.
func Warn(msg string, keyvals ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Warn(msg, keyvals...)
}

// Error logs an error with optional key-value pairs.
func Error(msg string, keyvals ...any) {
	mu.RLock()
	defer mu.RUnlock()
	std.Error(msg, keyvals...)
}
