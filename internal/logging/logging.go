// Package logging builds the zerolog logger that is passed down to every
// component.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the log file.
const (
	DefaultFile       = "logs/app.log"
	defaultMaxSizeMB  = 5
	defaultMaxBackups = 2
)

// Options configures a logger.
type Options struct {
	// Console receives human readable output. Nil disables it.
	Console io.Writer
	// NoColor disables colors on the console writer.
	NoColor bool
	// File is the rotating log file path. Empty disables file logging.
	File string
	// Level is one of trace, debug, info, warn, error.
	Level string
}

// New returns a logger writing to the configured outputs. The returned closer
// releases the log file and must be called before the process exits.
func New(opts Options) (zerolog.Logger, io.Closer) {
	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.Console,
			NoColor:    opts.NoColor,
			TimeFormat: time.DateTime,
		})
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
		}
		writers = append(writers, file)
		closer = file
	}

	if len(writers) == 0 {
		return zerolog.Nop(), closer
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
	return log, closer
}

// Component derives a logger tagged with the given component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
