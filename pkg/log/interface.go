// Package log provides a structured logging interface for cancelprep.
//
// The Logger interface is slog-compatible so the backend can be swapped; the
// default backend is zerolog (see zerolog.go). Components obtain a logger via
// GetLoggerWithName and attach the standard keys from attributes.go.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("preprocessing.balancer")
//	logger.Info("Downsampled majority class",
//	    log.OperationKey, log.OperationBalance,
//	    log.SamplesKey, 1000,
//	    log.RandomSeedKey, 42,
//	)

package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. The interface supports
// chaining through With to build contextual loggers.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	//
	// Example:
	//   logger.Debug("Fitted column vocabulary",
	//       log.ColumnKey, "hotel",
	//       log.CategoriesKey, 1,
	//   )
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	//
	// Example:
	//   logger.Warn("Test partition has unseen categories",
	//       log.ColumnKey, "market_segment",
	//       log.UnseenKey, 3,
	//   )
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// An error value passed under the "error" key is rendered with its
	// message; zerolog-aware errors also contribute their structured fields.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	//
	// Example:
	//   contextLogger := logger.With(
	//       log.ModelNameKey, "OneHotEncoder",
	//   )
	//   contextLogger.Info("Fit started")
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
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

// ParseLevel converts a level name to a Level. Unknown names yield LevelInfo
// and ok=false.
func ParseLevel(name string) (level Level, ok bool) {
	switch name {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// LoggerProvider creates and configures loggers.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger tagged with a component name.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
