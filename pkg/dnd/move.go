package dnd

import (
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/observability"
)

// GestureState is the lifecycle state of a drag manager.
type GestureState int

const (
	StateIdle GestureState = iota
	StateDragging
	StateCommitted
	StateAborted
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// CommitResult summarizes one drop.
type CommitResult struct {
	Spec     InsertionSpec
	Inserted []TemplateID
	Failed   []TemplateID
	Skipped  []TemplateID // fixed-position nodes
}

// MoveManager relocates existing nodes by drag and drop. One manager lives
// for exactly one gesture.
type MoveManager struct {
	id      string
	editor  Editor
	objects []Selectable
	logger  *log.Logger

	targeter       *Targeter
	positionStyles []string
	manips         []Manipulator
	startFramePt   geom.Pt
	cursorOffset   geom.Pt

	tentative InsertionSpec
	state     GestureState
	aborted   bool
	unlogged  bool
	result    CommitResult
}

// NewMoveManager starts a move gesture for objects, which must be rendered
// nodes or slot placeholders, at client point p. Failing to create a move
// manipulator for any node marks the gesture aborted; the first Drag call
// then ends it without committing.
func NewMoveManager(ed Editor, objects []Selectable, p geom.Pt, opts Options) *MoveManager {
	opts = opts.WithDefaults()
	m := &MoveManager{
		id:           uuid.New().String(),
		editor:       ed,
		objects:      objects,
		startFramePt: ed.ClientToFrame().Apply(p),
		cursorOffset: geom.Pt{X: math.Inf(1), Y: math.Inf(1)},
		state:        StateDragging,
	}
	m.logger = opts.Logger.With("gesture", m.id[:8])

	templates := make([]TemplateID, 0, len(objects))
	for _, obj := range objects {
		node, ok := valueNode(obj)
		if !ok {
			m.logger.Warn("cannot move selectable", "node", obj.Key())
			m.aborted = true
			m.positionStyles = append(m.positionStyles, "")
			m.manips = append(m.manips, nil)
			continue
		}
		templates = append(templates, node.Template)

		pos := ""
		if node.Kind != KindSlot {
			pos = ed.Style(node).Get("position")
		}
		m.positionStyles = append(m.positionStyles, pos)

		if box, ok := elementsBox(ed.ElementsFor(obj)); ok {
			m.cursorOffset.X = math.Min(m.cursorOffset.X, box.Left-p.X)
			m.cursorOffset.Y = math.Min(m.cursorOffset.Y, box.Top-p.Y)
		}

		if node.Kind == KindSlot {
			m.manips = append(m.manips, nil)
			continue
		}
		manip, err := ed.Freestyle(node)
		if err != nil {
			m.logger.Warn("no move manipulator", "node", node.ID, "err", err)
			m.aborted = true
		}
		m.manips = append(m.manips, manip)
	}
	if math.IsInf(m.cursorOffset.X, 1) {
		m.cursorOffset = geom.Pt{}
	}

	offset := m.cursorOffset
	m.targeter = NewTargeter(ed, templates, &offset, opts)
	if !m.aborted {
		ed.StartUnlogged()
		m.unlogged = true
	}

	observability.Gesture().OnGestureStart("move", m.id, len(objects))
	m.logger.Debug("move started", "nodes", len(objects), "offset", m.cursorOffset)
	return m
}

// ID identifies the gesture.
func (m *MoveManager) ID() string { return m.id }

// State returns the lifecycle state.
func (m *MoveManager) State() GestureState { return m.state }

// Aborted reports whether a manipulator failure aborted the gesture.
func (m *MoveManager) Aborted() bool { return m.aborted }

// Tentative returns the insertion the gesture would commit now.
func (m *MoveManager) Tentative() InsertionSpec { return m.tentative }

// Targeter returns the gesture's targeter.
func (m *MoveManager) Targeter() *Targeter { return m.targeter }

// Result returns the outcome of the drop once committed.
func (m *MoveManager) Result() CommitResult { return m.result }

// Drag handles a pointer move to client point p. If the dragged nodes no
// longer match the document the move is dropped silently. A manipulator
// failure aborts and ends the gesture and is returned as an ABORTED error.
func (m *MoveManager) Drag(p geom.Pt, mods Modifiers) error {
	if m.state != StateDragging || m.targeter == nil {
		return nil
	}
	if !m.validDragState() {
		m.logger.Info("invalid drag state; drag canceled")
		observability.Gesture().OnCancel("move", m.id, "invalid drag state")
		return nil
	}
	if m.aborted {
		return m.EndDrag()
	}

	if mods.Free() {
		m.tentative = m.targeter.ResolveAbsolute(p)
	} else {
		m.tentative = m.targeter.Resolve(p)
	}
	observability.Gesture().OnResolve("move", m.id, specKind(m.tentative))

	fp := m.editor.ClientToFrame().Apply(p)
	delta := MoveDelta{DX: fp.X - m.startFramePt.X, DY: fp.Y - m.startFramePt.Y, Modifiers: mods}
	for i, manip := range m.manips {
		if manip == nil {
			continue
		}
		if err := manip.Move(delta); err != nil {
			m.aborted = true
			_ = m.EndDrag()
			return errors.Wrap(errors.ErrCodeAborted, err, "move %s", m.objects[i].Key())
		}
	}
	return nil
}

// EndDrag finishes the gesture. Visual state is cleared first. When the
// gesture was not aborted, the dragged nodes are still valid and a
// non-rejected insertion is pending, each node is inserted independently;
// nodes with position: fixed are left where they are. The returned error is
// reserved for caller contract violations.
func (m *MoveManager) EndDrag() error {
	if m.state != StateDragging {
		return nil
	}
	if m.unlogged {
		m.editor.StopUnlogged()
		m.unlogged = false
	}
	m.targeter.Clear()

	spec := m.tentative
	m.tentative = nil

	if m.aborted {
		m.state = StateAborted
		m.logger.Info("move aborted")
		observability.Gesture().OnAbort("move", m.id, errors.New(errors.ErrCodeAborted, "manipulator aborted"))
		return nil
	}
	m.state = StateCommitted
	m.result = CommitResult{Spec: spec}

	if spec == nil || IsRejected(spec) || !m.validDragState() {
		m.logger.Debug("move ended without drop", "spec", Describe(spec))
		observability.Gesture().OnCommit("move", m.id, 0, 0)
		return nil
	}

	position := make(map[TemplateID]string, len(m.objects))
	var templates []TemplateID
	for i, obj := range m.objects {
		if node, ok := valueNode(obj); ok {
			position[node.Template] = m.positionStyles[i]
			templates = append(templates, node.Template)
		}
	}

	for _, tpl := range commitOrder(spec, m.editor.PrepareFocused(templates)) {
		if position[tpl] == "fixed" {
			m.result.Skipped = append(m.result.Skipped, tpl)
			continue
		}
		ok, err := InsertBySpec(m.editor, spec, tpl)
		if err != nil {
			m.state = StateAborted
			observability.Gesture().OnAbort("move", m.id, err)
			return err
		}
		if !ok {
			m.logger.Warn("insert failed", "node", tpl, "spec", Describe(spec))
			m.result.Failed = append(m.result.Failed, tpl)
			continue
		}
		m.result.Inserted = append(m.result.Inserted, tpl)
	}

	m.logger.Debug("move committed", "spec", Describe(spec), "inserted", len(m.result.Inserted), "failed", len(m.result.Failed))
	observability.Gesture().OnCommit("move", m.id, len(m.result.Inserted), len(m.result.Failed))
	return nil
}

// Cancel ends the gesture without touching the tree: the unlogged scope is
// closed and the marker cleared.
func (m *MoveManager) Cancel() {
	if m.state != StateDragging {
		return
	}
	if m.unlogged {
		m.editor.StopUnlogged()
		m.unlogged = false
	}
	m.targeter.Clear()
	m.tentative = nil
	m.state = StateAborted
	m.logger.Debug("move cancelled")
	observability.Gesture().OnCancel("move", m.id, "cancelled")
}

// validDragState reports whether every dragged object is still focused and
// still on screen. Tree evaluation between pointer events can invalidate
// either.
func (m *MoveManager) validDragState() bool {
	focused := m.editor.Focused()
	for _, obj := range m.objects {
		if !slices.ContainsFunc(focused, func(s Selectable) bool { return s.Key() == obj.Key() }) {
			return false
		}
		if len(m.editor.ElementsFor(obj)) == 0 {
			return false
		}
	}
	return len(m.objects) > 0
}

func elementsBox(els []*Element) (geom.Box, bool) {
	boxes := make([]geom.Box, 0, len(els))
	for _, el := range els {
		boxes = append(boxes, el.Box)
	}
	return geom.Merge(boxes...)
}

func specKind(spec InsertionSpec) string {
	if spec == nil {
		return ""
	}
	return spec.Kind()
}
