// Package logging builds zerolog loggers from configuration.
//
// Loggers are created once in main and handed to the components that log.
// There is no package-level logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls log output
type Config struct {
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug,omitempty"`
	// Output is stdout, stderr or a file path (appended to)
	Output string `yaml:"output"`
	// Format is console (human readable) or json
	Format     string `yaml:"format"`
	TimeFormat string `yaml:"time_format,omitempty"`
}

// DefaultConfig logs info and above to stderr in console format
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Output: "stderr",
		Format: "console",
	}
}

// New creates a logger for cfg. The closer releases the log file when
// cfg.Output names one and does nothing for stdout and stderr.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	out, closer, err := openOutput(cfg.Output)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	logger, err := NewWithWriter(cfg, out)
	if err != nil {
		closer.Close()
		return zerolog.Nop(), nopCloser{}, err
	}
	return logger, closer, nil
}

// NewWithWriter creates a logger writing to out, ignoring cfg.Output
func NewWithWriter(cfg Config, out io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel

	if cfg.Debug {
		level = zerolog.DebugLevel
	} else if cfg.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
		}
	}

	timeFormat := time.RFC3339
	if cfg.TimeFormat != "" {
		timeFormat = cfg.TimeFormat
	}

	switch strings.ToLower(cfg.Format) {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
		return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
	case "json":
		// zerolog.TimeFieldFormat is process-wide, so the layout rides on a hook
		return zerolog.New(out).Level(level).Hook(timestampHook{layout: timeFormat}), nil
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

type timestampHook struct {
	layout string
}

func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().Format(h.layout))
}

// WithComponent returns a child logger tagged with component
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

func openOutput(output string) (io.Writer, io.Closer, error) {
	switch output {
	case "", "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
