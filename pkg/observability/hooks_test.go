package observability

import (
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	// Gesture hooks
	g := NoopGestureHooks{}
	g.OnGestureStart("move", "g1", 3)
	g.OnResolve("move", "g1", "sibling")
	g.OnResolve("move", "g1", "")
	g.OnCancel("move", "g1", "invalid drag state")
	g.OnCommit("move", "g1", 2, 1)
	g.OnAbort("move", "g1", errors.New("boom"))

	// Index hooks
	i := NoopIndexHooks{}
	i.OnIndexBuilt("main", 12, 8, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Gesture().(NoopGestureHooks); !ok {
		t.Error("Gesture() should return NoopGestureHooks by default")
	}
	if _, ok := Index().(NoopIndexHooks); !ok {
		t.Error("Index() should return NoopIndexHooks by default")
	}

	// Set custom hooks
	customGesture := &testGestureHooks{}
	SetGestureHooks(customGesture)
	if Gesture() != customGesture {
		t.Error("SetGestureHooks should set custom hooks")
	}

	customIndex := &testIndexHooks{}
	SetIndexHooks(customIndex)
	if Index() != customIndex {
		t.Error("SetIndexHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Gesture().(NoopGestureHooks); !ok {
		t.Error("Reset() should restore NoopGestureHooks")
	}
	if _, ok := Index().(NoopIndexHooks); !ok {
		t.Error("Reset() should restore NoopIndexHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGestureHooks{}
	SetGestureHooks(custom)

	// Setting nil should be ignored
	SetGestureHooks(nil)

	if Gesture() != custom {
		t.Error("SetGestureHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testGestureHooks struct{ NoopGestureHooks }
type testIndexHooks struct{ NoopIndexHooks }
