// Copyright Halflink, 2026. All rights reserved.

// Package logging builds the loggers used by the pipeline stages. Each
// stage logs to the console and to its own append-mode log file so a run
// leaves an auditable trail next to its output files.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ParseLevel maps the --log flag value to a slog level. WARNING is
// accepted as an alias for WARN.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (use DEBUG, INFO, WARNING or ERROR)", raw)
	}
}

// New opens logFile for appending and returns a text logger writing to
// both the file and stderr, plus a close function for the file handle.
// The returned logger carries the given run id on every line.
func New(level slog.Level, logFile, runID string) (*slog.Logger, func() error, error) {
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", logFile, err)
	}

	h := slog.NewTextHandler(io.MultiWriter(os.Stderr, f), &slog.HandlerOptions{Level: level})
	logger := slog.New(h).With("run_id", runID)
	return logger, f.Close, nil
}

// NewRunID returns a fresh id correlating the log lines of one run.
func NewRunID() string { return uuid.NewString() }
