package dnd

import "github.com/matzehuels/droptarget/pkg/geom"

// =============================================================================
// Document queries
// =============================================================================

// Document answers structural questions about the rendered tree. All
// methods are queries; none of them mutate.
type Document interface {
	// Resolve maps an element to the lowest selectable it renders.
	Resolve(el *Element) (Selectable, bool)

	// InContext reports whether n belongs to the component context being
	// edited. Nodes internal to other components are out of context.
	InContext(n *RenderedNode) bool

	// ComponentRoot returns the in-context component instance whose root
	// element is el, if any.
	ComponentRoot(el *Element) (*RenderedNode, bool)

	// ShowingDefaultContents reports whether the slots rendered by owner are
	// showing their default contents.
	ShowingDefaultContents(owner *RenderedNode) bool

	// SlotOf returns the slot argument n is rendered in, if n is a direct
	// argument of a component instance's slot.
	SlotOf(n *RenderedNode) (SlotReference, bool)

	// EnclosingSlot returns the slot argument that contains tpl, walking up
	// the template tree.
	EnclosingSlot(tpl TemplateID) (SlotReference, bool)

	// Instance returns a rendered instance of the component template tpl.
	Instance(tpl TemplateID) (*RenderedNode, bool)

	Locked(sel Selectable) bool
	Style(n *RenderedNode) Style
	IsBody(n *RenderedNode) bool

	LayoutParent(sel Selectable) (Selectable, bool)
	LayoutChildren(sel Selectable) []*RenderedNode
	PrevSibling(n *RenderedNode) (*RenderedNode, bool)
	NextSibling(n *RenderedNode) (*RenderedNode, bool)

	// IsAncestor reports whether anc is tpl or one of its ancestors.
	IsAncestor(anc, tpl TemplateID) bool
}

// GridMeasurer is implemented by documents that can report grid tracks.
type GridMeasurer interface {
	MeasureGrid(n *RenderedNode) (*GridInfo, bool)
}

// Acceptor decides whether a candidate template may be dropped. A nil
// result accepts.
type Acceptor interface {
	CanAddChildren(target Selectable, candidate TemplateID) *Reason
	CanAddSiblings(target *RenderedNode, candidate TemplateID) *Reason
}

// =============================================================================
// Tree mutation
// =============================================================================

// ChildOptions tunes [TreeOps.TryInsertAsChild].
type ChildOptions struct {
	// ParentOffset is the drop point relative to the parent's padding box,
	// in frame coordinates. Nil when the point fell outside it.
	ParentOffset *geom.Pt
	// ForceFree positions the child absolutely.
	ForceFree bool
	// Area places the child in a grid cell. The host wraps non-tag parents.
	Area *GridArea
}

// TreeOps performs the tree mutations a drop commits. Each call either
// succeeds completely or reports false and leaves the tree unchanged.
type TreeOps interface {
	TryInsertAsChild(node TemplateID, parent Selectable, opts ChildOptions) bool
	TryInsertAsSibling(node TemplateID, anchor *RenderedNode, loc Loc) bool

	// PrepareFocused normalizes a multi-selection for insertion: it drops
	// nodes whose ancestor is also selected and sorts by document order.
	PrepareFocused(nodes []TemplateID) []TemplateID
}

// =============================================================================
// Views
// =============================================================================

// View is one rendered frame the targeter hit-tests against.
type View interface {
	Document
	Acceptor
	TreeOps

	Name() string
	Body() *Element

	// Frame is the viewport in client coordinates.
	Frame() geom.Box
	// ScaledFrame is the viewport in scaled-canvas coordinates.
	ScaledFrame() geom.Box
	// ClientToFrame converts client coordinates to frame coordinates.
	ClientToFrame() geom.Transform

	// SetTentative drives the visual drop marker. nil clears it.
	SetTentative(spec InsertionSpec)
}

// Manipulator moves an absolutely positioned node by a pixel delta. Move
// returns an error to abort the whole gesture.
type Manipulator interface {
	Move(d MoveDelta) error
}

// Modifiers are the keyboard modifiers held during a pointer move.
type Modifiers struct {
	Shift, Alt, Ctrl, Meta bool
}

// Free reports whether the modifiers force free positioning.
func (m Modifiers) Free() bool { return m.Meta || m.Ctrl }

// MoveDelta is the frame-space offset from the drag start.
type MoveDelta struct {
	DX, DY    float64
	Modifiers Modifiers
}

// Editor is a view the drag managers can commit into.
type Editor interface {
	View

	// Visible reports whether the view is on screen.
	Visible() bool
	// HasUserRoot reports whether the view's content root is evaluable.
	HasUserRoot() bool

	Focused() []Selectable
	ElementsFor(sel Selectable) []*Element

	// StartUnlogged opens a mutation scope that is not recorded for undo.
	StartUnlogged()
	StopUnlogged()

	// Freestyle returns a manipulator for the node's free position.
	Freestyle(n *RenderedNode) (Manipulator, error)

	// SelectNew focuses the view and selects a freshly inserted node.
	SelectNew(node TemplateID)
}
