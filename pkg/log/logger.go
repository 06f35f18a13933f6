package log

import (
	"io"
	"os"
	"sync"
	"time"

	perrors "github.com/YuminosukeSato/cancelprep/pkg/errors"
	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string

	// Format is json or console.
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(
		zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel),
	)
)

// SetupLogger configures the global zerolog-backed provider and routes
// library warnings (errors.Warn) through it.
func SetupLogger(cfg Config) error {
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		return perrors.NewValidationError("log.level", "must be one of debug, info, warn, error", cfg.Level)
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	switch cfg.Format {
	case "", "json":
	case "console":
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "15:04:05"}
	default:
		return perrors.NewValidationError("log.format", "must be json or console", cfg.Format)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = marshalStack

	base := zerolog.New(output).With().Timestamp().Logger().Level(toZerologLevel(level))
	p := NewZerologProvider(base)
	SetProvider(p)

	warnLogger := p.GetLoggerWithName("warnings")
	perrors.SetZerologWarnFunc(func(w error) {
		warnLogger.Warn(w.Error(), ErrAttrKey, w)
	})
	return nil
}

// SetProvider replaces the global logger provider. Tests use it to install a
// TestLoggerProvider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the default logger from the global provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a component logger from the global provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}
