// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about generation runs and output writes.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core packages never
// depend on a particular backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGenerationHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// The pipeline calls hooks to emit events:
//
//	observability.Generation().OnRunStart(ctx, runID, path)
//	// ... build, resolve, reflow, write ...
//	observability.Generation().OnRunComplete(ctx, runID, path, summary, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// RunSummary describes what one generation run produced.
type RunSummary struct {
	Labels   int // resolved labels
	Logical  int // logical lines before reflow
	Physical int // physical lines written
	Split    int // logical lines that needed continuation lines
	Bytes    int // encoded size of the output
}

// GenerationHooks receives events from generation runs.
type GenerationHooks interface {
	// OnRunStart fires before fragments are built. Path is empty for
	// in-memory renders.
	OnRunStart(ctx context.Context, runID, path string)

	// OnStage fires after each pipeline stage (build, resolve, reflow, write).
	OnStage(ctx context.Context, runID, stage string, duration time.Duration)

	// OnRunComplete fires once per run, also when the run failed.
	OnRunComplete(ctx context.Context, runID, path string, summary RunSummary, duration time.Duration, err error)
}

// =============================================================================
// Output Hooks
// =============================================================================

// OutputHooks receives events from output persistence.
type OutputHooks interface {
	// OnWrite records an attempt to replace path with size bytes.
	OnWrite(ctx context.Context, path string, size int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnRunStart(context.Context, string, string)             {}
func (NoopGenerationHooks) OnStage(context.Context, string, string, time.Duration) {}
func (NoopGenerationHooks) OnRunComplete(context.Context, string, string, RunSummary, time.Duration, error) {
}

// NoopOutputHooks is a no-op implementation of OutputHooks.
type NoopOutputHooks struct{}

func (NoopOutputHooks) OnWrite(context.Context, string, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generationHooks GenerationHooks = NoopGenerationHooks{}
	outputHooks     OutputHooks     = NoopOutputHooks{}
	hooksMu         sync.RWMutex
)

// SetGenerationHooks registers custom generation hooks.
// This should be called once at application startup before any run.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
	}
}

// SetOutputHooks registers custom output hooks.
func SetOutputHooks(h OutputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		outputHooks = h
	}
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
}

// Output returns the registered output hooks.
func Output() OutputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return outputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generationHooks = NoopGenerationHooks{}
	outputHooks = NoopOutputHooks{}
}
