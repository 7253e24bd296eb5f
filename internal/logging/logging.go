// Package logging sets up the converter's slog and zerolog loggers.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
// One file is written per run, named after the time the run started.
func LogFilePath(logsDir, appName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", appName, sessionStart.Format("20060102_150405")),
	)
}

// OpenLogFile creates logsDir if needed and opens the run's log file for
// appending. A leading ~ in logsDir is expanded.
func OpenLogFile(logsDir, appName string, sessionStart time.Time) (*os.File, error) {
	dir, err := homedir.Expand(logsDir)
	if err != nil {
		return nil, fmt.Errorf("error expanding logs dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating logs dir: %w", err)
	}
	f, err := os.OpenFile(LogFilePath(dir, appName, sessionStart), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	return f, nil
}
