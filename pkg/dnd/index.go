package dnd

import (
	"time"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/matzehuels/droptarget/pkg/geom"
	"github.com/matzehuels/droptarget/pkg/observability"
)

// Index is the hit-testing index of one render pass. NodeBoxes are ordered
// innermost first, so descendants precede their ancestors and the root is
// last. An Index is read-only once built.
type Index struct {
	Frame          geom.Box
	NodeBoxes      []*NodeBox
	InsertionBoxes []*InsertionBox

	beforeAfter map[*NodeBox]BeforeAfter
}

// Root returns the outermost node box, or nil for an empty index.
func (ix *Index) Root() *NodeBox {
	if len(ix.NodeBoxes) == 0 {
		return nil
	}
	return ix.NodeBoxes[len(ix.NodeBoxes)-1]
}

// BeforeAfter returns the insertion boxes built for nb.
func (ix *Index) BeforeAfter(nb *NodeBox) BeforeAfter {
	return ix.beforeAfter[nb]
}

// Containing returns the node boxes whose border box contains p, innermost
// first.
func (ix *Index) Containing(p geom.Pt) []*NodeBox {
	var out []*NodeBox
	for _, nb := range ix.NodeBoxes {
		if nb.Box.Contains(p) {
			out = append(out, nb)
		}
	}
	return out
}

// BuildIndex walks the elements of v breadth first and builds the node and
// insertion boxes for dropping toInsert. Descendants of the nodes in
// toInsert are left out so a node can never be dropped into itself.
func BuildIndex(v View, toInsert []TemplateID, cfg Config) *Index {
	start := time.Now()
	b := &indexBuilder{view: v, toInsert: toInsert, cfg: cfg, firstSlotChild: -1}
	if len(toInsert) > 0 {
		b.candidate = toInsert[0]
	}
	for _, tpl := range toInsert {
		if ref, ok := v.EnclosingSlot(tpl); ok {
			b.ancestorSlots = append(b.ancestorSlots, ref)
		}
	}

	ix := &Index{Frame: v.Frame(), beforeAfter: make(map[*NodeBox]BeforeAfter)}
	ix.NodeBoxes = b.nodeBoxes()
	ix.NodeBoxes = b.spliceSlotBoxes(ix.NodeBoxes)
	for _, nb := range ix.NodeBoxes {
		if !nb.AcceptsSiblings {
			continue
		}
		ba, ok := b.insertionBoxes(nb)
		if !ok {
			continue
		}
		ix.beforeAfter[nb] = ba
		if ba.Before != nil {
			ix.InsertionBoxes = append(ix.InsertionBoxes, ba.Before)
		}
		if ba.After != nil {
			ix.InsertionBoxes = append(ix.InsertionBoxes, ba.After)
		}
	}

	observability.Index().OnIndexBuilt(v.Name(), len(ix.NodeBoxes), len(ix.InsertionBoxes), time.Since(start))
	return ix
}

type indexBuilder struct {
	view      View
	toInsert  []TemplateID
	candidate TemplateID
	cfg       Config

	ancestorSlots  []SlotReference
	slotChildren   []*Element
	firstSlotChild int
	count          int
}

// elements lists the body's descendants in breadth-first order.
func (b *indexBuilder) elements() []*Element {
	body := b.view.Body()
	if body == nil {
		return nil
	}
	var out []*Element
	q := linkedlistqueue.New()
	q.Enqueue(body)
	for !q.Empty() {
		v, _ := q.Dequeue()
		el := v.(*Element)
		if el != body {
			out = append(out, el)
		}
		for _, c := range el.Children {
			q.Enqueue(c)
		}
	}
	return out
}

func (b *indexBuilder) nodeBoxes() []*NodeBox {
	var out []*NodeBox
	for _, el := range b.elements() {
		if el.Hidden {
			continue
		}
		if nb, ok := b.nodeBox(el); ok {
			out = append(out, nb)
			b.count++
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (b *indexBuilder) nodeBox(el *Element) (*NodeBox, bool) {
	v := b.view
	sel, ok := v.Resolve(el)
	if !ok {
		return nil, false
	}

	// A native slot that is not showing its default contents stands for the
	// owning instance's slot argument.
	var slotRef *SlotReference
	switch s := sel.(type) {
	case SlotReference:
		slotRef = &s
	case SlotPlaceholder:
		if s.Owner != nil && !v.ShowingDefaultContents(s.Owner) {
			slotRef = &SlotReference{Owner: s.Owner, Template: s.Owner.Template, Param: s.Param}
		}
	}

	if slotRef == nil {
		b.trackSlotChild(sel, el)
	}

	var check *RenderedNode
	if slotRef != nil {
		check = slotRef.Owner
	} else {
		check, _ = valueNode(sel)
	}

	var target Selectable
	switch {
	case check != nil && v.InContext(check) && slotRef != nil:
		target = *slotRef
	case check != nil && v.InContext(check):
		target = sel
	default:
		inst, ok := v.ComponentRoot(el)
		if !ok {
			return nil, false
		}
		target = inst
	}

	if v.Locked(target) {
		return nil, false
	}
	node, ok := NodeOf(target)
	if !ok {
		return nil, false
	}
	for _, tpl := range b.toInsert {
		if tpl != "" && v.IsAncestor(tpl, node.Template) {
			return nil, false
		}
	}

	var sty Style
	if n, ok := target.(*RenderedNode); ok && n.Kind != KindSlot {
		sty = v.Style(n)
	}
	var parentSty Style
	if p, ok := v.LayoutParent(target); ok {
		if pn, ok := p.(*RenderedNode); ok && pn.Kind == KindTag {
			parentSty = v.Style(pn)
		}
	}
	parentKind := ContainerFree
	if parentSty != nil {
		parentKind = parentSty.Kind()
	}

	flowDir := geom.Vertical
	if parentKind == ContainerFlexRow || parentKind == ContainerGrid {
		flowDir = geom.Horizontal
	}
	inFlex := parentKind == ContainerFlexRow || parentKind == ContainerFlexColumn

	container := ContainerNone
	if sty != nil {
		if sty.Has("display") || parentSty == nil {
			container = sty.Kind()
		} else {
			container = parentSty.Kind()
		}
	}

	body := false
	if n, ok := target.(*RenderedNode); ok {
		body = v.IsBody(n)
	}

	nb := &NodeBox{
		Selectable:      target,
		Element:         el,
		Box:             el.Box,
		PaddingBox:      el.Padding,
		ScaledBox:       el.Scaled,
		FlowDir:         flowDir,
		InFlex:          inFlex,
		InFlexReverse:   inFlex && parentSty.FlexReverse(),
		AcceptsChildren: b.acceptsChildren(target),
		Container:       container,
	}
	if body {
		nb.Box = v.Frame()
		nb.PaddingBox = nb.Box
		nb.ScaledBox = v.ScaledFrame()
	}

	if vn, ok := valueNode(target); ok && parentKind.Flows() && !body && !(sty != nil && sty.OutOfFlow()) {
		nb.AcceptsSiblings = v.CanAddSiblings(vn, b.candidate) == nil
	}

	if container == ContainerGrid {
		if m, ok := v.(GridMeasurer); ok {
			if n, ok := target.(*RenderedNode); ok {
				if g, ok := m.MeasureGrid(n); ok {
					nb.Grid = g
				}
			}
		}
	}
	return nb, true
}

func (b *indexBuilder) acceptsChildren(target Selectable) *Reason {
	v := b.view
	if r := v.CanAddChildren(target, b.candidate); r != nil {
		return r
	}
	// Default contents of a slot can only be edited while they are shown.
	if ph, ok := target.(SlotPlaceholder); ok && ph.Owner != nil && !v.ShowingDefaultContents(ph.Owner) {
		return Reject(ReasonSlotOutOfContext, ph.Node.Template)
	}
	return nil
}

// trackSlotChild records elements rendered directly inside the slot argument
// that holds a dragged node. They are merged into a synthetic slot box so the
// slot stays droppable while its contents are excluded.
func (b *indexBuilder) trackSlotChild(sel Selectable, el *Element) {
	if len(b.ancestorSlots) == 0 {
		return
	}
	n, ok := valueNode(sel)
	if !ok {
		return
	}
	cur, ok := b.view.SlotOf(n)
	if !ok {
		return
	}
	for _, ref := range b.ancestorSlots {
		if cur.Same(ref) {
			if b.firstSlotChild == -1 {
				b.firstSlotChild = b.count
			}
			b.slotChildren = append(b.slotChildren, el)
		}
	}
}

func (b *indexBuilder) spliceSlotBoxes(boxes []*NodeBox) []*NodeBox {
	if len(b.slotChildren) == 0 {
		return boxes
	}
	var border, padding, scaled []geom.Box
	for _, el := range b.slotChildren {
		border = append(border, el.Box)
		padding = append(padding, el.Padding)
		scaled = append(scaled, el.Scaled)
	}
	box, _ := geom.Merge(border...)
	paddingBox, _ := geom.Merge(padding...)
	scaledBox, _ := geom.Merge(scaled...)

	for _, ref := range b.ancestorSlots {
		inst, ok := b.view.Instance(ref.Template)
		if !ok {
			continue
		}
		fake := &NodeBox{
			Selectable: inst,
			Element:    b.slotChildren[0],
			Box:        box,
			PaddingBox: paddingBox,
			ScaledBox:  scaledBox,
			FlowDir:    geom.Horizontal,
			Container:  ContainerSlot,
		}
		at := len(boxes) - b.firstSlotChild
		if at < 0 {
			at = 0
		}
		boxes = append(boxes, nil)
		copy(boxes[at+1:], boxes[at:])
		boxes[at] = fake
	}
	return boxes
}

func (b *indexBuilder) insertionBoxes(nb *NodeBox) (BeforeAfter, bool) {
	v := b.view
	node, ok := valueNode(nb.Selectable)
	if !ok {
		return BeforeAfter{}, false
	}
	sameTemplate := func(n *RenderedNode, ok bool) bool {
		return ok && n.Template == node.Template
	}
	hasBefore := !sameTemplate(v.PrevSibling(node))
	hasAfter := !sameTemplate(v.NextSibling(node))

	thick, ext := b.cfg.StripThickness, b.cfg.StripExtension
	var lead, trail geom.Box
	if nb.FlowDir == geom.Horizontal {
		lead = nb.Box.SideBox(geom.SideLeft).Pad(thick, ext)
		trail = nb.Box.SideBox(geom.SideRight).Pad(thick, ext)
	} else {
		lead = nb.Box.SideBox(geom.SideTop).Pad(ext, thick)
		trail = nb.Box.SideBox(geom.SideBottom).Pad(ext, thick)
	}
	if nb.InFlexReverse {
		lead, trail = trail, lead
	}

	var ba BeforeAfter
	if hasBefore {
		ba.Before = &InsertionBox{Loc: LocBefore, Anchor: node, Element: nb.Element, Box: lead, FlowDir: nb.FlowDir}
	}
	if hasAfter {
		ba.After = &InsertionBox{Loc: LocAfter, Anchor: node, Element: nb.Element, Box: trail, FlowDir: nb.FlowDir}
	}
	return ba, true
}
