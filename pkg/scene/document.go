package scene

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/droptarget/pkg/dnd"
)

var (
	// ErrUnknownTemplate is returned when a template id is not in the document.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrDuplicateTemplate is returned by [Document.Add] when the id is taken.
	ErrDuplicateTemplate = errors.New("duplicate template id")

	// ErrCycle is returned when a template would become its own ancestor.
	ErrCycle = errors.New("template tree contains a cycle")
)

// Template is one node of the static document tree.
type Template struct {
	ID   dnd.TemplateID
	Kind dnd.NodeKind
	// Tag is the HTML tag of a tag template or the component name of a
	// component instance.
	Tag   string
	Style dnd.Style

	Parent   dnd.TemplateID
	Children []dnd.TemplateID

	// SlotParam names the slot of the parent component instance this
	// template is an argument of. Empty for plain children.
	SlotParam string
	// Slots lists the slot props a component instance exposes.
	Slots []string
	// Param is the prop a slot template renders.
	Param string

	Locked bool
	Text   bool
}

// HasSlot reports whether the component instance exposes param.
func (t *Template) HasSlot(param string) bool { return slices.Contains(t.Slots, param) }

// Document is the template tree of a scene. A document may hold several
// trees: the first root is the page, further roots are component
// definitions. Each tree is its own owner for cross-tree moves.
type Document struct {
	tpls     map[dnd.TemplateID]*Template
	roots    []dnd.TemplateID
	selected []dnd.TemplateID
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{tpls: make(map[dnd.TemplateID]*Template)}
}

// Add registers t. Parent links are established separately by [Document.Link].
func (d *Document) Add(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownTemplate)
	}
	if _, ok := d.tpls[t.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTemplate, t.ID)
	}
	if t.Style == nil {
		t.Style = dnd.Style{}
	}
	d.tpls[t.ID] = t
	return nil
}

// Link sets parent pointers from the children lists and records roots in
// the order given.
func (d *Document) Link(order []dnd.TemplateID) error {
	for _, id := range order {
		t := d.tpls[id]
		for _, c := range t.Children {
			ct, ok := d.tpls[c]
			if !ok {
				return fmt.Errorf("%s child %s: %w", id, c, ErrUnknownTemplate)
			}
			if ct.Parent != "" && ct.Parent != id {
				return fmt.Errorf("%s has two parents (%s, %s)", c, ct.Parent, id)
			}
			ct.Parent = id
			if t.Kind == dnd.KindComponent && ct.SlotParam == "" {
				ct.SlotParam = "children"
			}
		}
	}
	d.roots = nil
	for _, id := range order {
		if d.tpls[id].Parent == "" {
			d.roots = append(d.roots, id)
		}
	}
	for _, id := range order {
		seen := map[dnd.TemplateID]bool{}
		for cur := id; cur != ""; cur = d.tpls[cur].Parent {
			if seen[cur] {
				return fmt.Errorf("%w at %s", ErrCycle, id)
			}
			seen[cur] = true
		}
	}
	return nil
}

// Template returns the template with the given id.
func (d *Document) Template(id dnd.TemplateID) (*Template, bool) {
	t, ok := d.tpls[id]
	return t, ok
}

// Root returns the page root.
func (d *Document) Root() dnd.TemplateID {
	if len(d.roots) == 0 {
		return ""
	}
	return d.roots[0]
}

// Roots returns all tree roots.
func (d *Document) Roots() []dnd.TemplateID { return slices.Clone(d.roots) }

// Attached reports whether id is reachable from a root.
func (d *Document) Attached(id dnd.TemplateID) bool {
	for cur := id; ; {
		t, ok := d.tpls[cur]
		if !ok {
			return false
		}
		if t.Parent == "" {
			return slices.Contains(d.roots, cur)
		}
		cur = t.Parent
	}
}

// Owner returns the root of the tree id belongs to.
func (d *Document) Owner(id dnd.TemplateID) dnd.TemplateID {
	cur := id
	for {
		t, ok := d.tpls[cur]
		if !ok || t.Parent == "" {
			return cur
		}
		cur = t.Parent
	}
}

// IsAncestor reports whether anc is tpl or one of its ancestors.
func (d *Document) IsAncestor(anc, tpl dnd.TemplateID) bool {
	for cur := tpl; cur != ""; {
		if cur == anc {
			return true
		}
		t, ok := d.tpls[cur]
		if !ok {
			return false
		}
		cur = t.Parent
	}
	return false
}

// EnclosingSlot returns the nearest slot argument containing tpl.
func (d *Document) EnclosingSlot(tpl dnd.TemplateID) (dnd.SlotReference, bool) {
	for cur := tpl; cur != ""; {
		t, ok := d.tpls[cur]
		if !ok {
			break
		}
		if t.SlotParam != "" && t.Parent != "" {
			return dnd.SlotReference{Template: t.Parent, Param: t.SlotParam}, true
		}
		cur = t.Parent
	}
	return dnd.SlotReference{}, false
}

// Selected returns the nodes selected by the last commit.
func (d *Document) Selected() []dnd.TemplateID { return slices.Clone(d.selected) }

// SelectNew records nodes as the current selection.
func (d *Document) SelectNew(nodes []dnd.TemplateID) { d.selected = slices.Clone(nodes) }

// =============================================================================
// Mutations
// =============================================================================

// NewNode registers a detached tag template with a generated id.
func (d *Document) NewNode(tag string, style dnd.Style) dnd.TemplateID {
	id := dnd.TemplateID(tag + "-" + uuid.New().String()[:8])
	t := &Template{ID: id, Kind: dnd.KindTag, Tag: tag, Style: dnd.Style{}}
	for k, v := range style {
		t.Style[k] = v
	}
	d.tpls[id] = t
	return id
}

// Clone copies the subtree at id under fresh ids. The copy is detached.
func (d *Document) Clone(id dnd.TemplateID) (dnd.TemplateID, bool) {
	src, ok := d.tpls[id]
	if !ok {
		return "", false
	}
	cp := *src
	cp.ID = dnd.TemplateID(fmt.Sprintf("%s-%s", baseID(src.ID), uuid.New().String()[:8]))
	cp.Parent = ""
	cp.Style = dnd.Style{}
	for k, v := range src.Style {
		cp.Style[k] = v
	}
	cp.Slots = slices.Clone(src.Slots)
	cp.Children = nil
	d.tpls[cp.ID] = &cp
	for _, c := range src.Children {
		cc, ok := d.Clone(c)
		if !ok {
			continue
		}
		child := d.tpls[cc]
		child.Parent = cp.ID
		child.SlotParam = d.tpls[c].SlotParam
		cp.Children = append(cp.Children, cc)
	}
	return cp.ID, true
}

// Remove detaches id and forgets its subtree.
func (d *Document) Remove(id dnd.TemplateID) {
	t, ok := d.tpls[id]
	if !ok {
		return
	}
	d.detach(id)
	for _, c := range slices.Clone(t.Children) {
		d.Remove(c)
	}
	delete(d.tpls, id)
	d.roots = slices.DeleteFunc(d.roots, func(r dnd.TemplateID) bool { return r == id })
}

func (d *Document) detach(id dnd.TemplateID) {
	t := d.tpls[id]
	if t.Parent == "" {
		return
	}
	if p, ok := d.tpls[t.Parent]; ok {
		p.Children = slices.DeleteFunc(p.Children, func(c dnd.TemplateID) bool { return c == id })
	}
	t.Parent = ""
}

// attach inserts id under parent at index i, detaching it first.
func (d *Document) attach(id, parent dnd.TemplateID, param string, i int) {
	d.detach(id)
	p := d.tpls[parent]
	i = min(max(i, 0), len(p.Children))
	p.Children = slices.Insert(p.Children, i, id)
	t := d.tpls[id]
	t.Parent = parent
	t.SlotParam = param
}

// InsertChild appends node to parent, or to the parent's slot param when
// parent is a component instance. It reports false when the rules refuse
// the drop.
func (d *Document) InsertChild(node, parent dnd.TemplateID, param string) bool {
	p, ok := d.tpls[parent]
	if !ok || d.tpls[node] == nil {
		return false
	}
	if p.Kind == dnd.KindComponent && param == "" {
		param = "children"
	}
	if p.Kind != dnd.KindComponent {
		param = ""
	}
	if d.CanAddChild(parent, param, node) != nil {
		return false
	}
	d.attach(node, parent, param, len(p.Children))
	return true
}

// InsertSibling places node before or after anchor.
func (d *Document) InsertSibling(node, anchor dnd.TemplateID, after bool) bool {
	a, ok := d.tpls[anchor]
	if !ok || d.tpls[node] == nil || node == anchor || a.Parent == "" {
		return false
	}
	if d.CanAddSibling(anchor, node) != nil {
		return false
	}
	parent, param := a.Parent, a.SlotParam
	d.detach(node)
	i := slices.Index(d.tpls[parent].Children, anchor)
	if after {
		i++
	}
	d.attach(node, parent, param, i)
	return true
}

// PrepareFocused drops nodes whose ancestor is also listed and sorts the
// rest in document order.
func (d *Document) PrepareFocused(nodes []dnd.TemplateID) []dnd.TemplateID {
	var out []dnd.TemplateID
	for _, n := range nodes {
		covered := false
		for _, other := range nodes {
			if other != n && d.IsAncestor(other, n) {
				covered = true
				break
			}
		}
		if !covered && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	order := d.preorder()
	slices.SortStableFunc(out, func(a, b dnd.TemplateID) int { return order[a] - order[b] })
	return out
}

func (d *Document) preorder() map[dnd.TemplateID]int {
	order := make(map[dnd.TemplateID]int, len(d.tpls))
	var walk func(id dnd.TemplateID)
	walk = func(id dnd.TemplateID) {
		order[id] = len(order)
		for _, c := range d.tpls[id].Children {
			walk(c)
		}
	}
	for _, r := range d.roots {
		walk(r)
	}
	return order
}

// =============================================================================
// Rendering
// =============================================================================

// String renders every tree as an indented outline.
func (d *Document) String() string {
	var b strings.Builder
	for _, r := range d.roots {
		d.WriteTree(&b, r)
	}
	return b.String()
}

// WriteTree writes the subtree at id as an indented outline.
func (d *Document) WriteTree(b *strings.Builder, id dnd.TemplateID) {
	var walk func(id dnd.TemplateID, depth int)
	walk = func(id dnd.TemplateID, depth int) {
		t := d.tpls[id]
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(d.Label(id))
		if t.SlotParam != "" && t.SlotParam != "children" {
			fmt.Fprintf(b, " [%s]", t.SlotParam)
		}
		b.WriteByte('\n')
		for _, c := range t.Children {
			walk(c, depth+1)
		}
	}
	walk(id, 0)
}

// Label is a short description of a template, e.g. "hero <div>".
func (d *Document) Label(id dnd.TemplateID) string {
	t, ok := d.tpls[id]
	if !ok {
		return string(id)
	}
	switch t.Kind {
	case dnd.KindComponent:
		return fmt.Sprintf("%s <%s/>", t.ID, t.Tag)
	case dnd.KindSlot:
		return fmt.Sprintf("%s <slot %s>", t.ID, t.Param)
	}
	if pos := t.Style.Get("position"); pos != "" && pos != "static" {
		return fmt.Sprintf("%s <%s> %s", t.ID, t.Tag, pos)
	}
	return fmt.Sprintf("%s <%s>", t.ID, t.Tag)
}

func baseID(id dnd.TemplateID) string {
	s := string(id)
	if i := strings.LastIndexByte(s, '-'); i > 0 && len(s)-i == 9 {
		return s[:i]
	}
	return s
}
