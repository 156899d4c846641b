// Package logger builds the zerolog logger. The terminal belongs to the UI, so
// logs go to a file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Output receives the JSON lines. Takes precedence over Path.
	Output io.Writer
	// Path is a file to append to when Output is nil.
	Path string
}

// New returns a logger and a closer for its file, if one was opened.
// With neither Output nor Path set, it returns a disabled logger.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	var closer io.Closer = nopCloser{}
	if out == nil {
		if opts.Path == "" {
			return zerolog.Nop(), closer, nil
		}
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0700); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("logger.New: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("logger.New: %w", err)
		}
		out, closer = f, f
	}

	l := zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// parseLevel converts a string to a zerolog.Level.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
