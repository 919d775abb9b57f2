package dnd

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/droptarget/pkg/geom"
)

// Adoptee is an absolutely positioned node enclosed by a lasso rectangle.
type Adoptee struct {
	Node    *RenderedNode
	Element *Element
	Box     geom.Box // frame coordinates
}

// Targeter resolves pointer positions in one view to insertion specs. It
// owns at most one live spec at a time and mirrors it to the view's marker.
//
// The box index is built when the targeter is created and reused for the
// whole gesture. It goes stale under zoom or scroll; hosts that care call
// [Targeter.Invalidate] when either settles.
type Targeter struct {
	view         View
	toInsert     []TemplateID
	dragged      map[TemplateID]bool
	cursorOffset *geom.Pt
	cfg          Config
	logger       *log.Logger

	index *Index
	live  InsertionSpec
}

// NewTargeter creates a targeter for dropping toInsert into v. cursorOffset,
// when set, is added to every free insertion point so the dropped node's
// top-left lands where it started relative to the pointer.
func NewTargeter(v View, toInsert []TemplateID, cursorOffset *geom.Pt, opts Options) *Targeter {
	opts = opts.WithDefaults()
	t := &Targeter{
		view:         v,
		toInsert:     toInsert,
		dragged:      make(map[TemplateID]bool, len(toInsert)),
		cursorOffset: cursorOffset,
		cfg:          opts.Config,
		logger:       opts.Logger,
	}
	for _, tpl := range toInsert {
		t.dragged[tpl] = true
	}
	t.index = BuildIndex(v, toInsert, t.cfg)
	t.logger.Debug("box index built", "view", v.Name(), "nodes", len(t.index.NodeBoxes), "strips", len(t.index.InsertionBoxes))
	return t
}

// View returns the view the targeter hit-tests against.
func (t *Targeter) View() View { return t.view }

// Index returns the box index, rebuilding it after [Targeter.Invalidate].
func (t *Targeter) Index() *Index {
	if t.index == nil {
		t.index = BuildIndex(t.view, t.toInsert, t.cfg)
		t.logger.Debug("box index rebuilt", "view", t.view.Name())
	}
	return t.index
}

// Invalidate drops the cached box index. The next resolve rebuilds it.
func (t *Targeter) Invalidate() { t.index = nil }

// Live returns the current tentative insertion, or nil.
func (t *Targeter) Live() InsertionSpec { return t.live }

// =============================================================================
// Resolution
// =============================================================================

// Resolve computes the insertion spec for a pointer at p, in client
// coordinates. It returns nil when nothing is targeted.
func (t *Targeter) Resolve(p geom.Pt) InsertionSpec {
	ix := t.Index()

	for _, ib := range ix.InsertionBoxes {
		if ib.Box.Contains(p) {
			return t.targetInsertionBox(ib)
		}
	}

	containing := ix.Containing(p)
	if root := ix.Root(); len(containing) == 0 && root != nil && ix.Frame.Contains(p) {
		return t.targetNodeBox(root, root.Container != ContainerFree, p)
	}

	for _, nb := range containing {
		if nb.Grid != nil {
			return t.targetGrid(nb, p)
		}

		if nb.AcceptsChildren == nil {
			if spec, done := t.resolveChild(ix, nb, p); done {
				return spec
			}
		}

		if nb.AcceptsSiblings {
			if ib := t.siblingBox(ix, nb, p); ib != nil {
				return t.targetInsertionBox(ib)
			}
		}

		// Overlapping a component instance freely is still legal, so that
		// refusal does not block the boxes further out.
		if nb.AcceptsChildren != nil && nb.AcceptsChildren.Code != ReasonComponentInstance {
			return t.targetError(nb, nb.AcceptsChildren)
		}
	}

	return t.targetNothing()
}

// resolveChild targets nb as a parent. done is false when nb's container
// kind does not take children this way and resolution should move on.
func (t *Targeter) resolveChild(ix *Index, nb *NodeBox, p geom.Pt) (spec InsertionSpec, done bool) {
	if isSlotLike(nb.Selectable) {
		return t.targetNodeBox(nb, true, p), true
	}

	children := t.view.LayoutChildren(nb.Selectable)
	switch {
	case nb.Container == ContainerFree:
		if t.onlyChildDragged(children) {
			return t.targetNothing(), true
		}
		return t.targetNodeBox(nb, false, p), true

	case nb.Container.Flows() || nb.Container == ContainerSlot:
		if len(children) == 0 {
			return t.targetNodeBox(nb, true, p), true
		}
		if t.onlyChildDragged(children) {
			return t.targetNothing(), true
		}
		if ib := nearestChildBox(ix, children, p); ib != nil {
			return t.targetInsertionBox(ib), true
		}
		// Every child is free or fixed.
		return t.targetNodeBox(nb, true, p), true
	}
	return nil, false
}

// siblingBox picks the before or after strip of nb for p. Inside a flex
// parent, a pointer nearest a cross-axis side gets a strip on that side.
func (t *Targeter) siblingBox(ix *Index, nb *NodeBox, p geom.Pt) *InsertionBox {
	ba := ix.BeforeAfter(nb)
	var anchor *RenderedNode
	if ba.Before != nil {
		anchor = ba.Before.Anchor
	} else if ba.After != nil {
		anchor = ba.After.Anchor
	}

	if nb.InFlex && anchor != nil {
		side := nb.Box.ClosestSide(p)
		if flow := side.Orient(); flow != nb.FlowDir {
			pw, ph := t.cfg.StripExtension, t.cfg.StripThickness
			if flow == geom.Horizontal {
				pw, ph = t.cfg.StripThickness, t.cfg.StripExtension
			}
			return &InsertionBox{
				Loc:     sideLoc(side),
				Anchor:  anchor,
				Element: nb.Element,
				Box:     nb.Box.SideBox(side).Pad(pw, ph),
				FlowDir: flow,
			}
		}
	}

	lead := nb.Box.TopHalf()
	if nb.FlowDir == geom.Horizontal {
		lead = nb.Box.LeftHalf()
	}
	if lead.Contains(p) {
		return ba.Before
	}
	return ba.After
}

// ResolveAbsolute computes a free insertion for p. It only ever targets
// node box interiors, never insertion strips.
func (t *Targeter) ResolveAbsolute(p geom.Pt) InsertionSpec {
	ix := t.Index()
	containing := ix.Containing(p)
	if len(containing) > 0 {
		nb := containing[0]
		if nb.AcceptsChildren != nil {
			return t.targetError(nb, nb.AcceptsChildren)
		}
		return t.targetNodeBox(nb, false, p)
	}
	if root := ix.Root(); root != nil && ix.Frame.Contains(p) {
		return t.targetNodeBox(root, false, p)
	}
	return t.targetNothing()
}

// ResolveLassoAndAdoptees picks the innermost accepting node whose padding
// box fully contains rect as the parent of a drawn node. Unless noAdopt is
// set it also collects that parent's absolutely positioned children lying
// entirely inside rect.
func (t *Targeter) ResolveLassoAndAdoptees(rect geom.Box, forceFree, noAdopt bool) (InsertionSpec, []Adoptee) {
	ix := t.Index()

	var parent *NodeBox
	for _, nb := range ix.NodeBoxes {
		if nb.AcceptsChildren == nil && nb.PaddingBox.ContainsBox(rect) {
			parent = nb
			break
		}
	}
	if parent == nil {
		return t.targetNothing(), nil
	}

	var adoptees []Adoptee
	if !noAdopt {
		children := make(map[string]bool)
		for _, c := range t.view.LayoutChildren(parent.Selectable) {
			children[c.ID] = true
		}
		for _, nb := range ix.NodeBoxes {
			n, ok := nb.Selectable.(*RenderedNode)
			if !ok || n.Kind == KindSlot || !children[n.ID] || !rect.ContainsBox(nb.Box) {
				continue
			}
			if t.view.Style(n).Get("position") != "absolute" {
				continue
			}
			adoptees = append(adoptees, Adoptee{Node: n, Element: nb.Element, Box: nb.Element.Bounds})
		}
	}

	slotted := !(forceFree || parent.Container == ContainerFree)
	return t.targetNodeBox(parent, slotted, rect.TopLeft()), adoptees
}

// Clear drops the live spec and its marker.
func (t *Targeter) Clear() { t.targetNothing() }

// =============================================================================
// Targets
// =============================================================================

func (t *Targeter) set(spec InsertionSpec) InsertionSpec {
	if t.live != nil {
		t.view.SetTentative(nil)
	}
	t.live = spec
	if spec != nil {
		t.view.SetTentative(spec)
	}
	return spec
}

func (t *Targeter) targetNothing() InsertionSpec {
	t.set(nil)
	return nil
}

func (t *Targeter) targetError(nb *NodeBox, r *Reason) InsertionSpec {
	return t.set(&RejectedInsertion{Target: nb, Reason: r})
}

func (t *Targeter) targetNodeBox(nb *NodeBox, slotted bool, p geom.Pt) InsertionSpec {
	if t.cursorOffset != nil {
		p = p.Add(*t.cursorOffset)
	}
	return t.set(&FreeInsertion{Target: nb, Slotted: slotted, Point: p})
}

func (t *Targeter) targetInsertionBox(ib *InsertionBox) InsertionSpec {
	return t.set(&SiblingInsertion{Box: ib})
}

func (t *Targeter) targetGrid(nb *NodeBox, p geom.Pt) InsertionSpec {
	row, col := nb.Grid.CellAt(p)
	return t.set(&GridInsertion{
		Target: nb,
		Area:   GridArea{Rows: Span{Start: row, End: row}, Cols: Span{Start: col, End: col}},
	})
}

// =============================================================================
// Helpers
// =============================================================================

func (t *Targeter) onlyChildDragged(children []*RenderedNode) bool {
	return len(children) == 1 && t.dragged[children[0].Template]
}

// nearestChildBox returns the insertion strip of one of children closest to
// p, measured from the strip's center. Ties keep the earliest strip.
func nearestChildBox(ix *Index, children []*RenderedNode, p geom.Pt) *InsertionBox {
	set := make(map[string]bool, len(children))
	for _, c := range children {
		set[c.ID] = true
	}
	var best *InsertionBox
	bestDist := 0.0
	for _, ib := range ix.InsertionBoxes {
		if !set[ib.Anchor.ID] {
			continue
		}
		if d := ib.Box.Dist(p); best == nil || d < bestDist {
			best, bestDist = ib, d
		}
	}
	return best
}
