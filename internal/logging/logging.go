// Package logging sets up the diagnostic log. The terminal belongs to the
// UI while it runs, so diagnostics go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

type Options struct {
	Level           string
	Prefix          string
	ReportTimestamp bool
}

func DefaultOptions() Options {
	return Options{
		Level:           "info",
		Prefix:          "taskmaster",
		ReportTimestamp: true,
	}
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.ReportTimestamp,
		Formatter:       log.LogfmtFormatter,
	}), nil
}

// OpenFile appends to path, creating it and its directory as needed.
func OpenFile(path string, opts Options) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, opts)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}
