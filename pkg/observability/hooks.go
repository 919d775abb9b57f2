// Package observability provides hooks for metrics, tracing, and logging of
// drag gestures.
//
// The targeting engine runs synchronously inside pointer callbacks, so hooks
// are called inline and must return quickly. Consumers register hooks at
// startup; libraries emit events through the package-level getters.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGestureHooks(&myGestureHooks{})
//	    observability.SetIndexHooks(&myIndexHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Gesture().OnGestureStart("move", id, len(nodes))
//	// ... pointer moves ...
//	observability.Gesture().OnCommit("move", id, inserted, failed)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Gesture Hooks
// =============================================================================

// GestureHooks receives events from the drag managers. kind is one of
// "move", "insert" or "outline"; id identifies one gesture.
type GestureHooks interface {
	// OnGestureStart records the start of a gesture over the given number of nodes.
	OnGestureStart(kind, id string, nodes int)

	// OnResolve records the insertion spec kind resolved for one pointer move.
	// spec is empty when nothing was targeted.
	OnResolve(kind, id, spec string)

	// OnCancel records a pointer move that was dropped because the gesture
	// no longer matched the document.
	OnCancel(kind, id, reason string)

	// OnCommit records a finished drop.
	OnCommit(kind, id string, inserted, failed int)

	// OnAbort records a gesture that ended without committing.
	OnAbort(kind, id string, err error)
}

// =============================================================================
// Index Hooks
// =============================================================================

// IndexHooks receives events from the box index builder.
type IndexHooks interface {
	// OnIndexBuilt records one box index build for a view.
	OnIndexBuilt(view string, nodeBoxes, insertionBoxes int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGestureHooks is a no-op implementation of GestureHooks.
type NoopGestureHooks struct{}

func (NoopGestureHooks) OnGestureStart(string, string, int) {}
func (NoopGestureHooks) OnResolve(string, string, string)   {}
func (NoopGestureHooks) OnCancel(string, string, string)    {}
func (NoopGestureHooks) OnCommit(string, string, int, int)  {}
func (NoopGestureHooks) OnAbort(string, string, error)      {}

// NoopIndexHooks is a no-op implementation of IndexHooks.
type NoopIndexHooks struct{}

func (NoopIndexHooks) OnIndexBuilt(string, int, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gestureHooks GestureHooks = NoopGestureHooks{}
	indexHooks   IndexHooks   = NoopIndexHooks{}
	hooksMu      sync.RWMutex
)

// SetGestureHooks registers custom gesture hooks.
// This should be called once at application startup before any gesture starts.
func SetGestureHooks(h GestureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gestureHooks = h
	}
}

// SetIndexHooks registers custom index hooks.
func SetIndexHooks(h IndexHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		indexHooks = h
	}
}

// Gesture returns the registered gesture hooks.
func Gesture() GestureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gestureHooks
}

// Index returns the registered index hooks.
func Index() IndexHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return indexHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gestureHooks = NoopGestureHooks{}
	indexHooks = NoopIndexHooks{}
}
