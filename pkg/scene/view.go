package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/droptarget/pkg/dnd"
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/geom"
)

// entry is one rendered element and what it resolves to.
type entry struct {
	el       *dnd.Element
	parent   *entry
	children []*entry

	// sel is the lowest selectable the element renders.
	sel dnd.Selectable
	// outer stands for the element in layout queries: the component
	// instance for a component root, sel when in context, else nil.
	outer     dnd.Selectable
	instance  *dnd.RenderedNode
	slot      *dnd.SlotReference
	inContext bool
	grid      *dnd.GridInfo
}

// View is one rendered frame of a scene. It implements [dnd.Editor] over a
// fixed set of pre-computed element boxes; mutations change the document,
// not the boxes.
type View struct {
	doc  *Document
	name string

	frame   geom.Box
	zoom    float64
	visible bool
	body    *dnd.Element

	entries   map[string]*entry // by element id
	byKey     map[string]*entry // by selectable key
	inContext map[string]bool   // by rendered node id
	order     []*entry

	component    *dnd.RenderedNode
	showDefaults bool

	focused   []dnd.Selectable
	tentative dnd.InsertionSpec
	markers   []dnd.InsertionSpec
	unlogged  int

	// FreestyleFunc overrides the default move manipulator.
	FreestyleFunc func(n *dnd.RenderedNode) (dnd.Manipulator, error)
}

var _ dnd.Editor = (*View)(nil)
var _ dnd.GridMeasurer = (*View)(nil)

// Document returns the document the view renders.
func (v *View) Document() *Document { return v.doc }

// Elements returns every rendered element in file order.
func (v *View) Elements() []*dnd.Element {
	out := make([]*dnd.Element, 0, len(v.order))
	for _, e := range v.order {
		out = append(out, e.el)
	}
	return out
}

// Node returns the rendered node with the given element key. A component
// root element yields its instance.
func (v *View) Node(key string) (*dnd.RenderedNode, bool) {
	e, ok := v.entries[key]
	if !ok {
		return nil, false
	}
	if e.instance != nil {
		return e.instance, true
	}
	return dnd.NodeOf(e.sel)
}

// Selectable returns the selectable the element with key stands for.
func (v *View) Selectable(key string) (dnd.Selectable, bool) {
	e, ok := v.entries[key]
	if !ok {
		return nil, false
	}
	if e.outer != nil {
		return e.outer, true
	}
	return e.sel, e.sel != nil
}

// Focus replaces the focused selectables with the elements named by keys.
func (v *View) Focus(keys ...string) error {
	v.focused = v.focused[:0]
	for _, k := range keys {
		sel, ok := v.Selectable(k)
		if !ok {
			return errors.New(errors.ErrCodeNodeNotFound, "no element %q in view %s", k, v.name)
		}
		v.focused = append(v.focused, sel)
	}
	return nil
}

// Tentative returns the current drop marker.
func (v *View) Tentative() dnd.InsertionSpec { return v.tentative }

// Markers returns every marker update, with nil for clears.
func (v *View) Markers() []dnd.InsertionSpec { return v.markers }

// Unlogged reports whether an unlogged scope is open.
func (v *View) Unlogged() bool { return v.unlogged > 0 }

// =============================================================================
// dnd.View
// =============================================================================

func (v *View) Name() string          { return v.name }
func (v *View) Body() *dnd.Element    { return v.body }
func (v *View) Frame() geom.Box       { return v.frame }
func (v *View) ScaledFrame() geom.Box { return v.frame }

// ClientToFrame maps client coordinates into the frame, undoing zoom.
func (v *View) ClientToFrame() geom.Transform {
	return geom.Transform{Scale: 1 / v.zoom, Offset: v.frame.TopLeft().Scale(-1 / v.zoom)}
}

func (v *View) SetTentative(spec dnd.InsertionSpec) {
	v.tentative = spec
	v.markers = append(v.markers, spec)
}

// =============================================================================
// dnd.Document
// =============================================================================

func (v *View) Resolve(el *dnd.Element) (dnd.Selectable, bool) {
	e, ok := v.entries[el.ID]
	if !ok || e.sel == nil {
		return nil, false
	}
	return e.sel, true
}

func (v *View) InContext(n *dnd.RenderedNode) bool { return v.inContext[n.ID] }

func (v *View) ComponentRoot(el *dnd.Element) (*dnd.RenderedNode, bool) {
	e, ok := v.entries[el.ID]
	if !ok || e.instance == nil || !v.inContext[e.instance.ID] {
		return nil, false
	}
	return e.instance, true
}

func (v *View) ShowingDefaultContents(*dnd.RenderedNode) bool { return v.showDefaults }

func (v *View) SlotOf(n *dnd.RenderedNode) (dnd.SlotReference, bool) {
	e, ok := v.byKey[n.ID]
	if !ok {
		return dnd.SlotReference{}, false
	}
	for p := e.parent; p != nil; p = p.parent {
		if p.slot != nil {
			return *p.slot, true
		}
		if isNode(p.outer) {
			break
		}
	}
	return dnd.SlotReference{}, false
}

func (v *View) EnclosingSlot(tpl dnd.TemplateID) (dnd.SlotReference, bool) {
	return v.doc.EnclosingSlot(tpl)
}

func (v *View) Instance(tpl dnd.TemplateID) (*dnd.RenderedNode, bool) {
	for _, e := range v.order {
		if e.instance != nil && e.instance.Template == tpl && v.inContext[e.instance.ID] {
			return e.instance, true
		}
	}
	return nil, false
}

func (v *View) Locked(sel dnd.Selectable) bool {
	n, ok := dnd.NodeOf(sel)
	if !ok {
		return false
	}
	t, ok := v.doc.Template(n.Template)
	return ok && t.Locked
}

func (v *View) Style(n *dnd.RenderedNode) dnd.Style {
	if t, ok := v.doc.Template(n.Template); ok {
		return t.Style
	}
	return nil
}

func (v *View) IsBody(n *dnd.RenderedNode) bool {
	return n.Kind == dnd.KindTag && n.Tag == "body"
}

func (v *View) LayoutParent(sel dnd.Selectable) (dnd.Selectable, bool) {
	e, ok := v.entryFor(sel)
	if !ok {
		return nil, false
	}
	for p := e.parent; p != nil; p = p.parent {
		if isNode(p.outer) {
			return p.outer, true
		}
	}
	return nil, false
}

func (v *View) LayoutChildren(sel dnd.Selectable) []*dnd.RenderedNode {
	e, ok := v.entryFor(sel)
	if !ok {
		return nil
	}
	return layoutChildren(e)
}

func layoutChildren(e *entry) []*dnd.RenderedNode {
	var out []*dnd.RenderedNode
	for _, c := range e.children {
		if isNode(c.outer) {
			n, _ := dnd.NodeOf(c.outer)
			out = append(out, n)
			continue
		}
		out = append(out, layoutChildren(c)...)
	}
	return out
}

func (v *View) siblings(n *dnd.RenderedNode) []*dnd.RenderedNode {
	if p, ok := v.LayoutParent(n); ok {
		return v.LayoutChildren(p)
	}
	var top []*dnd.RenderedNode
	for _, e := range v.order {
		if e.parent == nil && isNode(e.outer) {
			top = append(top, mustNode(e.outer))
		}
	}
	return top
}

func (v *View) PrevSibling(n *dnd.RenderedNode) (*dnd.RenderedNode, bool) {
	sibs := v.siblings(n)
	for i, s := range sibs {
		if s.ID == n.ID && i > 0 {
			return sibs[i-1], true
		}
	}
	return nil, false
}

func (v *View) NextSibling(n *dnd.RenderedNode) (*dnd.RenderedNode, bool) {
	sibs := v.siblings(n)
	for i, s := range sibs {
		if s.ID == n.ID && i+1 < len(sibs) {
			return sibs[i+1], true
		}
	}
	return nil, false
}

func (v *View) IsAncestor(anc, tpl dnd.TemplateID) bool { return v.doc.IsAncestor(anc, tpl) }

func (v *View) MeasureGrid(n *dnd.RenderedNode) (*dnd.GridInfo, bool) {
	e, ok := v.byKey[n.ID]
	if !ok || e.grid == nil {
		return nil, false
	}
	return e.grid, true
}

func (v *View) entryFor(sel dnd.Selectable) (*entry, bool) {
	if sel == nil {
		return nil, false
	}
	e, ok := v.byKey[sel.Key()]
	return e, ok
}

// =============================================================================
// dnd.Acceptor and dnd.TreeOps
// =============================================================================

// slotTarget maps a selectable to the template and slot param that receive
// children dropped into it.
func slotTarget(sel dnd.Selectable) (dnd.TemplateID, string, bool) {
	switch s := sel.(type) {
	case *dnd.RenderedNode:
		return s.Template, "", true
	case dnd.SlotReference:
		return s.Template, s.Param, true
	case dnd.SlotPlaceholder:
		return s.Node.Template, "", true
	}
	return "", "", false
}

func (v *View) CanAddChildren(target dnd.Selectable, cand dnd.TemplateID) *dnd.Reason {
	tpl, param, ok := slotTarget(target)
	if !ok {
		return &dnd.Reason{Code: dnd.ReasonAtomic, Detail: fmt.Sprintf("unsupported target %T", target)}
	}
	return v.doc.CanAddChild(tpl, param, cand)
}

func (v *View) CanAddSiblings(target *dnd.RenderedNode, cand dnd.TemplateID) *dnd.Reason {
	return v.doc.CanAddSibling(target.Template, cand)
}

func (v *View) TryInsertAsChild(node dnd.TemplateID, parent dnd.Selectable, opts dnd.ChildOptions) bool {
	tpl, param, ok := slotTarget(parent)
	if !ok || !v.doc.InsertChild(node, tpl, param) {
		return false
	}
	t, _ := v.doc.Template(node)
	switch {
	case opts.Area != nil:
		clearFree(t.Style)
		t.Style["grid-row"] = strconv.Itoa(opts.Area.Rows.Start)
		t.Style["grid-column"] = strconv.Itoa(opts.Area.Cols.Start)
	case opts.ForceFree:
		t.Style["position"] = "absolute"
		if opts.ParentOffset != nil {
			t.Style["left"] = px(opts.ParentOffset.X)
			t.Style["top"] = px(opts.ParentOffset.Y)
		}
	default:
		clearFree(t.Style)
	}
	return true
}

func (v *View) TryInsertAsSibling(node dnd.TemplateID, anchor *dnd.RenderedNode, loc dnd.Loc) bool {
	if !v.doc.InsertSibling(node, anchor.Template, loc.IsTrailing()) {
		return false
	}
	t, _ := v.doc.Template(node)
	clearFree(t.Style)
	return true
}

func (v *View) PrepareFocused(nodes []dnd.TemplateID) []dnd.TemplateID {
	return v.doc.PrepareFocused(nodes)
}

// =============================================================================
// dnd.Editor
// =============================================================================

func (v *View) Visible() bool { return v.visible }

func (v *View) HasUserRoot() bool {
	return v.doc.Root() != "" && len(v.body.Children) > 0
}

func (v *View) Focused() []dnd.Selectable { return v.focused }

// ElementsFor returns the element rendering sel while its template is
// still attached to the document.
func (v *View) ElementsFor(sel dnd.Selectable) []*dnd.Element {
	e, ok := v.entryFor(sel)
	if !ok {
		return nil
	}
	if n, ok := dnd.NodeOf(sel); ok && !v.doc.Attached(n.Template) {
		return nil
	}
	return []*dnd.Element{e.el}
}

func (v *View) StartUnlogged() { v.unlogged++ }

func (v *View) StopUnlogged() {
	if v.unlogged > 0 {
		v.unlogged--
	}
}

func (v *View) Freestyle(n *dnd.RenderedNode) (dnd.Manipulator, error) {
	if v.FreestyleFunc != nil {
		return v.FreestyleFunc(n)
	}
	t, ok := v.doc.Template(n.Template)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no template %s", n.Template)
	}
	return &freestyle{doc: v.doc, tpl: t.ID, left: parsePx(t.Style.Get("left")), top: parsePx(t.Style.Get("top"))}, nil
}

func (v *View) SelectNew(node dnd.TemplateID) {
	v.doc.SelectNew([]dnd.TemplateID{node})
}

// freestyle moves an absolutely positioned template by updating its left
// and top offsets. Other nodes are left alone.
type freestyle struct {
	doc       *Document
	tpl       dnd.TemplateID
	left, top float64
}

func (f *freestyle) Move(d dnd.MoveDelta) error {
	t, ok := f.doc.Template(f.tpl)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "template %s was removed", f.tpl)
	}
	if t.Style.Get("position") != "absolute" {
		return nil
	}
	t.Style["left"] = px(f.left + d.DX)
	t.Style["top"] = px(f.top + d.DY)
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func isNode(sel dnd.Selectable) bool {
	switch sel.(type) {
	case *dnd.RenderedNode, dnd.SlotPlaceholder:
		return true
	}
	return false
}

func mustNode(sel dnd.Selectable) *dnd.RenderedNode {
	n, _ := dnd.NodeOf(sel)
	return n
}

func clearFree(s dnd.Style) {
	if s.Get("position") == "absolute" {
		delete(s, "position")
		delete(s, "left")
		delete(s, "top")
	}
}

func px(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) + "px" }

func parsePx(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	return f
}
