package dnd

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/observability"
)

// Factory creates the node to insert, evaluated in the given editor. It
// reports false when the editor cannot host the node.
type Factory func(ed Editor) (TemplateID, bool)

// InsertManager drags a new node in from a palette across every open view.
// Each eligible view gets its own targeter; the first view that resolves a
// target wins the pointer.
type InsertManager struct {
	id        string
	logger    *log.Logger
	editors   []Editor
	targeters []*Targeter

	tentative     InsertionSpec
	tentativeView Editor
	state         GestureState
}

// BuildInsertManager creates one targeter per visible editor whose content
// root is evaluable. Each targeter is seeded with a provisional node from
// factory so acceptance checks see a concrete node.
func BuildInsertManager(editors []Editor, factory Factory, opts Options) *InsertManager {
	opts = opts.WithDefaults()
	m := &InsertManager{id: uuid.New().String(), state: StateDragging}
	m.logger = opts.Logger.With("gesture", m.id[:8])

	for _, ed := range editors {
		if !ed.Visible() || !ed.HasUserRoot() {
			continue
		}
		node, ok := factory(ed)
		if !ok {
			m.logger.Debug("factory declined view", "view", ed.Name())
			continue
		}
		m.editors = append(m.editors, ed)
		m.targeters = append(m.targeters, NewTargeter(ed, []TemplateID{node}, nil, opts))
	}

	observability.Gesture().OnGestureStart("insert", m.id, 1)
	m.logger.Debug("insert started", "views", len(m.targeters))
	return m
}

// ID identifies the gesture.
func (m *InsertManager) ID() string { return m.id }

// State returns the lifecycle state.
func (m *InsertManager) State() GestureState { return m.state }

// Targeters returns the per-view targeters in view order.
func (m *InsertManager) Targeters() []*Targeter { return m.targeters }

// Tentative returns the pending insertion and the view it belongs to.
func (m *InsertManager) Tentative() (Editor, InsertionSpec) {
	return m.tentativeView, m.tentative
}

// Aborted is always false: inserting has no manipulator that can fail.
func (m *InsertManager) Aborted() bool { return false }

// Drag polls the targeters in view order and keeps the first result. Every
// other targeter is cleared, so at most one view shows a marker.
func (m *InsertManager) Drag(p geom.Pt, mods Modifiers) {
	if m.state != StateDragging {
		return
	}
	m.tentative, m.tentativeView = nil, nil
	winner := -1
	for i, t := range m.targeters {
		if mods.Free() {
			m.tentative = t.ResolveAbsolute(p)
		} else {
			m.tentative = t.Resolve(p)
		}
		if m.tentative != nil {
			m.tentativeView = m.editors[i]
			winner = i
			break
		}
	}
	for i, t := range m.targeters {
		if i != winner {
			t.Clear()
		}
	}
	observability.Gesture().OnResolve("insert", m.id, specKind(m.tentative))
}

// EndDrag clears every targeter and, if a non-rejected insertion is
// pending, creates the real node with factory and inserts it. It returns
// the editor and node inserted; ok is false when nothing was inserted.
func (m *InsertManager) EndDrag(factory Factory) (ed Editor, node TemplateID, ok bool, err error) {
	if m.state != StateDragging {
		return nil, "", false, nil
	}
	m.clearTargeters()
	m.state = StateCommitted

	view, spec := m.tentativeView, m.tentative
	m.tentative, m.tentativeView = nil, nil
	if view == nil || spec == nil || IsRejected(spec) {
		observability.Gesture().OnCommit("insert", m.id, 0, 0)
		return nil, "", false, nil
	}

	node, made := factory(view)
	if !made {
		observability.Gesture().OnCommit("insert", m.id, 0, 0)
		return nil, "", false, nil
	}
	inserted, err := InsertBySpec(view, spec, node)
	if err != nil {
		m.state = StateAborted
		observability.Gesture().OnAbort("insert", m.id, err)
		return nil, "", false, err
	}
	if !inserted {
		m.logger.Warn("insert failed", "node", node, "spec", Describe(spec))
		observability.Gesture().OnCommit("insert", m.id, 0, 1)
		return nil, "", false, nil
	}
	view.SelectNew(node)
	m.logger.Debug("insert committed", "view", view.Name(), "node", node, "spec", Describe(spec))
	observability.Gesture().OnCommit("insert", m.id, 1, 0)
	return view, node, true, nil
}

// Clear cancels the gesture without inserting.
func (m *InsertManager) Clear() {
	m.tentative, m.tentativeView = nil, nil
	m.clearTargeters()
	if m.state == StateDragging {
		m.state = StateAborted
		observability.Gesture().OnAbort("insert", m.id, nil)
	}
}

func (m *InsertManager) clearTargeters() {
	for _, t := range m.targeters {
		t.Clear()
	}
}
