// Package logging sets up the run's log sink: a console writer teed with a
// timestamped append-only file so every run leaves a reviewable trace.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing to stdout and to
// {dir}/assetctl_{timestamp}.log. Every line carries the run id. The
// returned close func flushes and closes the file.
func New(dir, level, runID string) (zerolog.Logger, string, func() error, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), "", nil, fmt.Errorf("parse log level: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), "", nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("assetctl_%s.log", time.Now().Format("20060102_150405")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), "", nil, fmt.Errorf("open log file: %w", err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(zerolog.MultiLevelWriter(console, f)).
		Level(lvl).
		With().
		Timestamp().
		Str("run_id", runID).
		Logger()

	return logger, path, f.Close, nil
}
