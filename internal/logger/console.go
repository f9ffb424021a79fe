// Package logger provides leveled console logging for fragment loading.
//
// Output lines are prefixed with [HH:MM:SS] timestamps. The logger is
// thread-safe and filters messages below the configured level. Color output
// is enabled automatically when writing to a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is the logging interface the loader and fragment builder accept.
// Diagnostic-only events (binary skips, ignore-source fallback) go to Debug;
// nothing these components log is ever surfaced as an error to the caller.
type Logger interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ConsoleLogger logs to a writer with timestamps and thread safety.
// If the writer is nil, messages are silently discarded.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to the provided io.Writer.
// logLevel is one of trace, debug, info, warn, error (case-insensitive);
// empty or invalid levels default to "info". Color is enabled only for
// os.Stdout/os.Stderr with TTY support.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// Discard returns a logger that drops everything. Useful as a default when
// callers do not care about diagnostics.
func Discard() *ConsoleLogger {
	return NewConsoleLogger(nil, "error")
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// The color library's detection also honors NO_COLOR.
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel lowercases and validates a level, defaulting to "info".
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}
	return "info"
}

// levelValue maps a level name to its numeric rank.
func levelValue(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog reports whether a message at messageLevel passes the filter.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return levelValue(messageLevel) >= levelValue(cl.logLevel)
}

// logf writes one timestamped line, coloring the level tag when enabled.
func (cl *ConsoleLogger) logf(level, format string, args ...interface{}) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	timestamp := time.Now().Format("15:04:05")
	tag := strings.ToUpper(level)
	if cl.colorOutput {
		switch level {
		case "warn":
			tag = color.New(color.FgYellow).Sprint(tag)
		case "error":
			tag = color.New(color.FgRed).Sprint(tag)
		case "debug", "trace":
			tag = color.New(color.FgCyan).Sprint(tag)
		}
	}

	fmt.Fprintf(cl.writer, "[%s] %s %s\n", timestamp, tag, fmt.Sprintf(format, args...))
}

// Tracef logs at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...interface{}) {
	cl.logf("trace", format, args...)
}

// Debugf logs at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.logf("debug", format, args...)
}

// Infof logs at info level.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.logf("info", format, args...)
}

// Warnf logs at warn level.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.logf("warn", format, args...)
}

// Errorf logs at error level.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.logf("error", format, args...)
}
