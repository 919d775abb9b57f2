// Package cli implements the dndreplay command-line interface.
//
// Each command loads a scene file, builds the targeting engine over one of
// its views and replays a pointer gesture, printing the resolved insertion
// specs and the resulting document tree. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - resolve: Hit-test one or more points
//   - lasso: Resolve the parent and adoptees of a drawn rectangle
//   - move: Drag a node from one point to another and commit
//   - insert: Drag a new node in from the palette across all views
//   - outline: Reorder templates by dropping onto an outline row
//   - dot: Render the spatial index as a Graphviz diagram
//   - play: Step the pointer interactively with the arrow keys
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Gesture and
// index events are logged through observability hooks, and the logger is
// passed through context.Context for progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Replayed 12 moves (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks writes gesture and index events at debug level.
type logHooks struct {
	logger *log.Logger
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (h *logHooks) OnGestureStart(kind, id string, nodes int) {
	h.logger.Debug("gesture start", "kind", kind, "gesture", short(id), "nodes", nodes)
}

func (h *logHooks) OnResolve(kind, id, spec string) {
	if spec == "" {
		spec = "nothing"
	}
	h.logger.Debug("resolve", "kind", kind, "gesture", short(id), "spec", spec)
}

func (h *logHooks) OnCancel(kind, id, reason string) {
	h.logger.Debug("gesture cancelled", "kind", kind, "gesture", short(id), "reason", reason)
}

func (h *logHooks) OnCommit(kind, id string, inserted, failed int) {
	h.logger.Debug("gesture committed", "kind", kind, "gesture", short(id), "inserted", inserted, "failed", failed)
}

func (h *logHooks) OnAbort(kind, id string, err error) {
	h.logger.Warn("gesture aborted", "kind", kind, "gesture", short(id), "err", err)
}

func (h *logHooks) OnIndexBuilt(view string, nodes, strips int, d time.Duration) {
	h.logger.Debug("index built", "view", view, "nodes", nodes, "strips", strips, "took", d.Round(time.Microsecond))
}
