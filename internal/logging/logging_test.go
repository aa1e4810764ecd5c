package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetBeforeInitIsNop(t *testing.T) {
	logger := Get(CategoryDriver)
	if logger == nil {
		t.Fatal("Get returned nil logger")
	}
	// Must not panic.
	logger.Info("noop")
}

func TestCategorizedOutput(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	Set(zap.New(core))
	defer Set(zap.NewNop())

	Get(CategoryDriver).Debug("refining region")
	Get(CategoryRule).Info("building pair")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	if entries[0].LoggerName != string(CategoryDriver) {
		t.Fatalf("first entry category %q, want %q", entries[0].LoggerName, CategoryDriver)
	}
	if entries[1].LoggerName != string(CategoryRule) {
		t.Fatalf("second entry category %q, want %q", entries[1].LoggerName, CategoryRule)
	}
}

func TestInit(t *testing.T) {
	if err := Init(true); err != nil {
		t.Fatalf("Init(verbose) failed: %v", err)
	}
	defer Set(zap.NewNop())

	if logger := Get(CategoryCLI); logger == nil {
		t.Fatal("Get returned nil after Init")
	}
	Sync()
}
