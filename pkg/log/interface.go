// Package log provides the structured logging interface used across sciexplain.
//
// The Logger interface is slog-shaped so call sites read the same regardless
// of backend; the default backend is zerolog writing JSON lines to stderr.
// Models obtain their logger by component name and verbosity:
//
//	logger := log.GetLoggerWithLevel("model.inmemory", log.FromVerbosity(30))
//	logger.Warn("unique values inferred",
//	    log.ModelNameKey, "InMemoryModel",
//	    log.SamplesKey, 100,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. Error values are rendered with their
// message and, when created through pkg/errors, a stack trace.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If the first field is an error followed by an even number of fields,
	// the error is logged under the "error" key.
	//
	// Example:
	//   logger.Error("static prediction failed",
	//       err,
	//       log.OperationKey, log.OperationPredict,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to skip building expensive fields:
	//
	//   if logger.Enabled(ctx, LevelDebug) {
	//       logger.Debug("outputs", "values", mat.Formatted(out))
	//   }
	Enabled(ctx context.Context, level Level) bool
}

// Level represents the severity level of a log message.
// The values mirror log/slog so the two can be converted directly.
type Level int

const (
	LevelDebug Level = -4 // Debug-level messages
	LevelInfo  Level = 0  // Informational messages
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
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

// LoggerProvider creates loggers. Swapping the provider with SetProvider
// redirects every logger created afterwards, which is how tests capture output.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// GetLoggerWithLevel returns a named logger whose minimum level is level,
	// independent of the provider level.
	GetLoggerWithLevel(name string, level Level) Logger

	// SetLevel sets the minimum log level for loggers created by this provider.
	SetLevel(level Level)
}
