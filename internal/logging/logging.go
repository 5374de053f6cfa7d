// Package logging builds the zerolog loggers used by the CLI and adapts them
// to the simulation engine's printf-style Logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config controls logger construction.
type Config struct {
	Level  string
	Format string
	Out    io.Writer // defaults to os.Stderr
}

// NewLogger builds a zerolog logger. An unknown level falls back to info,
// an unknown format falls back to console.
func NewLogger(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// ComponentLogger tags every event with the emitting component.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// Adapter satisfies the engine's Debugf/Infof/Warnf/Errorf logger on top of zerolog.
type Adapter struct {
	L zerolog.Logger
}

// NewAdapter wraps l.
func NewAdapter(l zerolog.Logger) Adapter {
	return Adapter{L: l}
}

func (a Adapter) Debugf(format string, args ...any) { a.L.Debug().Msg(fmt.Sprintf(format, args...)) }
func (a Adapter) Infof(format string, args ...any)  { a.L.Info().Msg(fmt.Sprintf(format, args...)) }
func (a Adapter) Warnf(format string, args ...any)  { a.L.Warn().Msg(fmt.Sprintf(format, args...)) }
func (a Adapter) Errorf(format string, args ...any) { a.L.Error().Msg(fmt.Sprintf(format, args...)) }
