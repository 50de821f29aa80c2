// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout runs, game sessions, and store operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the engines stay free
// of any observability framework.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnLayoutStart(ctx, "radial", len(nodes))
//	// ... lay out ...
//	observability.Layout().OnLayoutComplete(ctx, "radial", placed, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from layout and render runs.
type LayoutHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, engine string, nodeCount int)
	OnLayoutComplete(ctx context.Context, engine string, placed int, duration time.Duration, err error)

	// OnTick is called after each force simulation tick driven by the pipeline
	// or the diagram controller.
	OnTick(ctx context.Context, tick int, alpha float64)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Game Hooks
// =============================================================================

// GameHooks receives events from game sessions.
type GameHooks interface {
	// OnSessionCreated records a new game session.
	OnSessionCreated(ctx context.Context, sessionID, mindMapID string)

	// OnSessionScored records a completed session and its score.
	OnSessionScored(ctx context.Context, sessionID string, score int, elapsed time.Duration)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from session and mind map stores.
type StoreHooks interface {
	// OnRead records a lookup. found is false on a miss.
	OnRead(ctx context.Context, backend, kind string, found bool)

	// OnWrite records a write.
	OnWrite(ctx context.Context, backend, kind string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnLayoutStart(context.Context, string, int) {}
func (NoopLayoutHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopLayoutHooks) OnTick(context.Context, int, float64)                             {}
func (NoopLayoutHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopLayoutHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopGameHooks is a no-op implementation of GameHooks.
type NoopGameHooks struct{}

func (NoopGameHooks) OnSessionCreated(context.Context, string, string)            {}
func (NoopGameHooks) OnSessionScored(context.Context, string, int, time.Duration) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnRead(context.Context, string, string, bool)   {}
func (NoopStoreHooks) OnWrite(context.Context, string, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	gameHooks   GameHooks   = NoopGameHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout runs.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetGameHooks registers custom game hooks.
func SetGameHooks(h GameHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gameHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Game returns the registered game hooks.
func Game() GameHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gameHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	gameHooks = NoopGameHooks{}
	storeHooks = NoopStoreHooks{}
}
