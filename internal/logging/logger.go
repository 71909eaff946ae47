// Package logging builds the zerolog loggers used by the binaries.
package logging

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Levels lists the accepted log levels, most verbose first.
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// ValidateLevel returns an error unless level is one of Levels.
func ValidateLevel(level string) error {
	if slices.Contains(Levels, level) {
		return nil
	}
	return fmt.Errorf("invalid log level %q (supported: %s)", level, strings.Join(Levels, ", "))
}

// ParseLevel converts a level name to a zerolog level. Unknown names fall
// back to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// New creates a logger writing to w and sets the global level. format
// "json" writes structured lines; anything else writes human-readable
// console output.
func New(level, format string, w io.Writer) zerolog.Logger {
	lvl := ParseLevel(level)
	zerolog.SetGlobalLevel(lvl)

	var output io.Writer
	if format == "json" {
		output = w
	} else {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}
