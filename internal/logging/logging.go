// Package logging provides categorized structured logging for the cubature
// library and CLI. Each subsystem logs under a named category so individual
// systems can be followed in verbose runs.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a logging subsystem.
type Category string

const (
	// CategoryDriver covers the adaptive subdivision loop.
	CategoryDriver Category = "driver"
	// CategoryRule covers rule construction and node/weight generation.
	CategoryRule Category = "rule"
	// CategoryCLI covers command-line handling.
	CategoryCLI Category = "cli"
)

var (
	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init builds the process-wide logger. With verbose set, debug-level events
// (per-subdivision traces) are emitted; otherwise only info and above.
func Init(verbose bool) error {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Set(logger)
	return nil
}

// Set replaces the process-wide logger. Tests use this to capture output.
func Set(logger *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = logger
}

// Get returns the logger for a category. Before Init it returns a no-op
// logger, so library code can log unconditionally.
func Get(cat Category) *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.Named(string(cat))
}

// Sync flushes buffered log entries. Called on process exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = base.Sync()
}
