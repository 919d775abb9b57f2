package outline

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/observability"
)

// Insertion classifies a hovered row.
type Insertion string

const (
	InsertAbove     Insertion = "insert-above"
	InsertBelow     Insertion = "insert-below"
	InsertAsChild   Insertion = "insert-as-child"
	CantInsertAbove Insertion = "cant-insert-above"
	CantInsertBelow Insertion = "cant-insert-below"
	CantInsertChild Insertion = "cant-insert-child"
)

// Allowed reports whether the insertion can be dropped.
func (i Insertion) Allowed() bool {
	return i == InsertAbove || i == InsertBelow || i == InsertAsChild
}

func (i Insertion) relLoc() RelLoc {
	switch i {
	case InsertAbove:
		return RelBefore
	case InsertBelow:
		return RelAfter
	}
	return RelAppend
}

// Marker is what the outline draws: the row, the kind of line and the
// indent it is drawn at. A dedented insertion is drawn on the hovered row
// at the ancestor's indent.
type Marker struct {
	Item      Item
	Insertion Insertion
	Indent    int
}

// Outcome is the resolved drop for a hovered row. Reason is set for the
// cant-* insertions.
type Outcome struct {
	Insertion Insertion
	Item      Item
	Reason    *dnd.Reason
	Marker    Marker
}

// Manager reorders templates by dragging outline rows. Unlike the canvas
// managers it classifies rows, not boxes: the top or bottom sliver of a row
// inserts above or below it, the middle inserts as a child, and dragging
// left past the dedent threshold climbs to ancestors.
type Manager struct {
	tree   Tree
	cfg    dnd.Config
	logger *log.Logger

	id      string
	dragged []Clip
	start   geom.Pt
	target  *Outcome
}

// NewManager creates an idle manager.
func NewManager(tree Tree, opts dnd.Options) *Manager {
	opts = opts.WithDefaults()
	return &Manager{tree: tree, cfg: opts.Config, logger: opts.Logger}
}

// Dragged returns the clips of the current gesture.
func (m *Manager) Dragged() []Clip { return m.dragged }

// Target returns the last resolved outcome, or nil.
func (m *Manager) Target() *Outcome { return m.target }

// DragStart begins a gesture at p. It refuses items that are not tags,
// components or slots, and children of text blocks.
func (m *Manager) DragStart(items []Clip, p geom.Pt) bool {
	for _, it := range items {
		if _, ok := m.tree.Kind(it.Node); !ok {
			return false
		}
		if parent, ok := m.tree.Parent(it.Node); ok && m.tree.IsTextBlock(parent) {
			return false
		}
	}
	m.id = uuid.New().String()
	m.dragged = slices.Clone(items)
	m.start = p
	m.target = nil
	observability.Gesture().OnGestureStart("outline", m.id, len(items))
	return true
}

// Drag resolves the pointer at p over row. A nil result keeps the previous
// target.
func (m *Manager) Drag(p geom.Pt, row Row) *Outcome {
	out := m.insertion(p, row)
	if out != nil {
		m.target = out
		observability.Gesture().OnResolve("outline", m.id, string(out.Insertion))
	}
	return out
}

// Drop performs the pending insertion and returns the inserted templates.
// Templates moving to another tree are cloned into place and removed from
// their source once the clone is in; a refused clone leaves the source
// untouched. The gesture ends either way.
func (m *Manager) Drop() ([]dnd.TemplateID, error) {
	defer m.EndDrag()

	t := m.target
	if t == nil || !t.Insertion.Allowed() || len(m.dragged) == 0 {
		return nil, nil
	}
	for _, c := range m.dragged {
		if t.Item == NodeItem(c.Node) {
			observability.Gesture().OnCancel("outline", m.id, "dropped onto itself")
			return nil, nil
		}
	}
	for _, c := range m.dragged {
		if _, ok := m.tree.Parent(c.Node); !ok {
			m.logger.Warn("the root node is not movable", "node", c.Node)
			observability.Gesture().OnCancel("outline", m.id, "root not movable")
			return nil, errors.New(errors.ErrCodeUnsupported, "the root node is not movable")
		}
	}

	sameTree := m.dragged[0].Owner == m.tree.Owner(t.Item.Node)
	loc := t.Insertion.relLoc()
	clips := slices.Clone(m.dragged)
	if loc == RelAfter {
		slices.Reverse(clips)
	}

	var inserted []dnd.TemplateID
	for _, c := range clips {
		if sameTree {
			if m.tree.TryInsertAt(c.Node, loc, t.Item) {
				inserted = append(inserted, c.Node)
			}
			continue
		}
		cp, ok := m.tree.Clone(c.Node)
		if !ok {
			continue
		}
		if !m.tree.TryInsertAt(cp, loc, t.Item) {
			m.tree.Remove(cp)
			continue
		}
		inserted = append(inserted, cp)
		m.tree.Remove(c.Node)
	}
	m.tree.SelectNew(inserted)

	m.logger.Debug("outline drop", "target", t.Item, "loc", loc, "inserted", len(inserted), "same_tree", sameTree)
	observability.Gesture().OnCommit("outline", m.id, len(inserted), len(clips)-len(inserted))
	return inserted, nil
}

// EndDrag clears the gesture.
func (m *Manager) EndDrag() {
	m.target = nil
	m.dragged = nil
	m.start = geom.Pt{}
}

// =============================================================================
// Row queries
// =============================================================================

// IsDragged reports whether item is one of the dragged templates.
func (m *Manager) IsDragged(item Item) bool {
	if item.IsSlot() {
		return false
	}
	return slices.ContainsFunc(m.dragged, func(c Clip) bool { return c.Node == item.Node })
}

// IsDropTarget reports whether item is the current target.
func (m *Manager) IsDropTarget(item Item) bool {
	return m.target != nil && m.target.Item == item
}

// InsertionMarker returns the marker drawn on item, if any.
func (m *Manager) InsertionMarker(item Item) (Marker, bool) {
	if m.target == nil || m.target.Marker.Item != item {
		return Marker{}, false
	}
	return m.target.Marker, true
}

// IsDropParent reports whether item would become the parent of the dropped
// templates. For sibling insertions into a component argument, that is the
// argument's slot row.
func (m *Manager) IsDropParent(item Item) bool {
	t := m.target
	if t == nil || !t.Insertion.Allowed() {
		return false
	}
	if t.Insertion == InsertAsChild {
		return t.Item == item
	}
	if t.Item.IsSlot() {
		return false
	}
	parent, ok := m.tree.Parent(t.Item.Node)
	if !ok {
		return false
	}
	if kind, _ := m.tree.Kind(parent); kind == dnd.KindComponent {
		slot, ok := m.tree.ParentSlot(t.Item.Node)
		return ok && slot == item
	}
	return NodeItem(parent) == item
}

// =============================================================================
// Classification
// =============================================================================

func slivers(p geom.Pt, r geom.Box, acceptsChildren bool) (top, bottom bool) {
	sliver := r.Height / 2
	if acceptsChildren {
		sliver = r.Height / 4
	}
	return p.Y <= r.Top+sliver, p.Y >= r.Bottom()-sliver
}

func (m *Manager) insertion(p geom.Pt, row Row) *Outcome {
	if len(m.dragged) == 0 {
		return nil
	}
	if out := m.dedented(p, row); out != nil {
		return out
	}

	acceptsChildren, acceptsSibling := m.acceptance(row.Item)
	top, bottom := slivers(p, row.Rect, acceptsChildren == nil)
	above := top
	below := !row.ChildrenShowing && bottom

	out := &Outcome{Item: row.Item}
	switch {
	case acceptsSibling == nil && above:
		out.Insertion = InsertAbove
	case acceptsSibling == nil && below:
		// With children showing, the row's bottom edge is not the end of
		// its subtree.
		out.Insertion = InsertBelow
	case acceptsChildren == nil && !row.ChildrenShowing:
		out.Insertion = InsertAsChild
	case !row.Item.IsSlot() && acceptsSibling != nil && (above || below):
		out.Insertion, out.Reason = CantInsertBelow, acceptsSibling
		if above {
			out.Insertion = CantInsertAbove
		}
	case acceptsChildren != nil && !row.ChildrenShowing:
		out.Insertion, out.Reason = CantInsertChild, acceptsChildren
	default:
		return nil
	}
	out.Marker = Marker{Item: row.Item, Insertion: out.Insertion, Indent: row.Indent}
	return out
}

// dedented climbs from the hovered row to ancestors while the pointer is
// far enough left of the drag start and each step is the last child of a
// parent that accepts the dragged nodes as siblings.
func (m *Manager) dedented(p geom.Pt, row Row) *Outcome {
	if row.Item.IsSlot() {
		return nil
	}
	threshold := m.cfg.DedentThreshold
	dx := p.X - m.start.X
	if dx >= -threshold {
		return nil
	}
	_, bottom := slivers(p, row.Rect, false)
	if !m.IsDragged(row.Item) && !bottom {
		return nil
	}

	target, indent := row.Item.Node, row.Indent
	for dx < -threshold && m.canInsertAsParentSibling(target) {
		target, _ = m.tree.Parent(target)
		indent--
		dx += threshold
	}
	if target == row.Item.Node {
		return nil
	}
	return &Outcome{
		Item:      NodeItem(target),
		Insertion: InsertBelow,
		Marker:    Marker{Item: row.Item, Insertion: InsertBelow, Indent: indent},
	}
}

func (m *Manager) canInsertAsParentSibling(target dnd.TemplateID) bool {
	parent, ok := m.tree.Parent(target)
	if !ok {
		return false
	}
	if kind, _ := m.tree.Kind(parent); kind != dnd.KindTag && kind != dnd.KindSlot {
		return false
	}
	kids := m.tree.Children(parent)
	if len(kids) == 0 || kids[len(kids)-1] != target {
		return false
	}
	for _, c := range m.dragged {
		if m.tree.CanAddSiblings(NodeItem(parent), c.Node) != nil {
			return false
		}
	}
	return true
}

// acceptance returns the first refusal across the dragged templates for
// each relation.
func (m *Manager) acceptance(target Item) (children, sibling *dnd.Reason) {
	for _, c := range m.dragged {
		if children == nil {
			children = m.tree.CanAddChildren(target, c.Node)
		}
		if sibling == nil {
			sibling = m.tree.CanAddSiblings(target, c.Node)
		}
	}
	return children, sibling
}
