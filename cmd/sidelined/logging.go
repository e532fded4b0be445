package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// setupLogger writes logs to a file. The console owns the terminal while
// a match is running, so log output must not share stdout with it.
func setupLogger(debug bool, path string) (*log.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	return logger, f, nil
}
