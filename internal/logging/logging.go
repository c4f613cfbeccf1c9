// Package logging builds the console logger used by the command line tool.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
)

// DefaultLevel is the level used when none is configured.
const DefaultLevel = "info"

// Options configures the console logger.
type Options struct {
	// Level is one of debug, info, warn or error
	Level string

	// Quiet raises the level to error regardless of Level
	Quiet bool

	// Timestamps prefixes every line with the time
	Timestamps bool
}

// New returns a slog.Logger backed by a charmbracelet handler writing to w.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Quiet {
		level = log.ErrorLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.RFC3339,
		TimeFunction:    log.NowUTC,
	})

	return slog.New(handler), nil
}

// ParseLevel parses a level name. An empty name means DefaultLevel.
func ParseLevel(name string) (log.Level, error) {
	if name == "" {
		name = DefaultLevel
	}

	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return 0, fmt.Errorf("%w: log level %q: %w", errors.ErrInvalidInput, name, err)
	}
	return level, nil
}
