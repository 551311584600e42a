// Package logging writes structured diagnostics to a file. The TUI owns
// stdout and stderr, so nothing may log to the terminal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger = zerolog.Nop()
	closer *os.File
)

// Init routes the package logger to path, creating parent directories as
// needed. Before Init (and after a failed Init) logging is a no-op.
func Init(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		closer.Close()
	}
	closer = f
	logger = zerolog.New(f).With().Timestamp().Logger()
	return nil
}

// L returns the package logger.
func L() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return &logger
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		closer.Close()
		closer = nil
	}
	logger = zerolog.Nop()
}
