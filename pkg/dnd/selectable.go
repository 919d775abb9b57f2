package dnd

import "fmt"

// TemplateID identifies a node in the static document tree.
type TemplateID string

// NodeKind classifies a rendered node by the kind of template it instantiates.
type NodeKind int

const (
	KindTag NodeKind = iota
	KindComponent
	KindSlot
)

func (k NodeKind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindComponent:
		return "component"
	case KindSlot:
		return "slot"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// =============================================================================
// Selectable
// =============================================================================

// Selectable is anything a drop can target: a [*RenderedNode], a
// [SlotReference] or a [SlotPlaceholder]. The set is closed; consumers switch
// over the concrete types.
type Selectable interface {
	// Key is a stable identity for the selectable within one render pass.
	Key() string
	selectable()
}

// RenderedNode is one runtime instantiation of a template. Two rendered nodes
// may share a template when the template sits under a repeating context.
type RenderedNode struct {
	ID       string // unique per render pass
	Template TemplateID
	Kind     NodeKind
	Tag      string // HTML tag for KindTag, component name for KindComponent
}

func (n *RenderedNode) Key() string { return n.ID }
func (*RenderedNode) selectable()   {}

func (n *RenderedNode) String() string {
	return fmt.Sprintf("%s(%s)", n.Kind, n.ID)
}

// SlotReference names a prop slot of a component instance. Dropping into it
// fills the slot argument rather than the slot's default contents.
type SlotReference struct {
	Owner    *RenderedNode // the component instance; nil when only the template is known
	Template TemplateID    // template of the component instance
	Param    string        // slot prop name
}

func (s SlotReference) Key() string {
	if s.Owner != nil {
		return s.Owner.ID + "#" + s.Param
	}
	return string(s.Template) + "#" + s.Param
}

func (SlotReference) selectable() {}

func (s SlotReference) String() string { return "slot(" + s.Key() + ")" }

// Same reports whether s and o reference the same slot of the same template.
func (s SlotReference) Same(o SlotReference) bool {
	return s.Template == o.Template && s.Param == o.Param
}

// SlotPlaceholder is a native slot rendered while editing the component that
// declares it. Dropping into it edits the slot's default contents.
type SlotPlaceholder struct {
	Node  *RenderedNode // the slot node itself, Kind == KindSlot
	Owner *RenderedNode // component instance rendering the slot
	Param string
}

func (s SlotPlaceholder) Key() string { return s.Node.ID }
func (SlotPlaceholder) selectable()   {}

func (s SlotPlaceholder) String() string { return "placeholder(" + s.Node.ID + ")" }

// NodeOf returns the rendered node behind sel: the node itself, the owner of
// a slot reference, or the slot node of a placeholder. It reports false when
// no rendered node is known.
func NodeOf(sel Selectable) (*RenderedNode, bool) {
	switch s := sel.(type) {
	case *RenderedNode:
		return s, s != nil
	case SlotReference:
		return s.Owner, s.Owner != nil
	case SlotPlaceholder:
		return s.Node, s.Node != nil
	}
	return nil, false
}

// valueNode returns the rendered node for selectables that can have
// siblings: plain nodes and slot placeholders.
func valueNode(sel Selectable) (*RenderedNode, bool) {
	switch s := sel.(type) {
	case *RenderedNode:
		return s, s != nil
	case SlotPlaceholder:
		return s.Node, s.Node != nil
	}
	return nil, false
}

func isSlotLike(sel Selectable) bool {
	switch sel.(type) {
	case SlotReference, SlotPlaceholder:
		return true
	}
	return false
}
