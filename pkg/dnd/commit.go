package dnd

import (
	"github.com/matzehuels/droptarget/pkg/errors"
	"github.com/matzehuels/droptarget/pkg/geom"
)

// InsertBySpec commits one node at the position spec describes. It reports
// false when the document refused the mutation. A rejected or unknown spec
// is a caller error.
func InsertBySpec(v View, spec InsertionSpec, node TemplateID) (bool, error) {
	switch s := spec.(type) {
	case *SiblingInsertion:
		return v.TryInsertAsSibling(node, s.Box.Anchor, s.Box.Loc), nil

	case *FreeInsertion:
		opts := ChildOptions{
			ParentOffset: parentOffset(v, s.Target, s.Point),
			ForceFree:    !s.Slotted,
		}
		return v.TryInsertAsChild(node, s.Target.Selectable, opts), nil

	case *GridInsertion:
		parent, ok := s.Target.Selectable.(*RenderedNode)
		if !ok || parent.Kind != KindTag {
			return false, errors.New(errors.ErrCodeInternal, "grid insertion into non-tag %s", s.Target.Selectable.Key())
		}
		area := s.Area
		return v.TryInsertAsChild(node, parent, ChildOptions{Area: &area}), nil

	case *RejectedInsertion:
		return false, errors.New(errors.ErrCodeInternal, "cannot commit a rejected insertion: %s", s.Reason)

	case nil:
		return false, errors.New(errors.ErrCodeInternal, "no insertion to commit")
	}
	return false, errors.New(errors.ErrCodeInternal, "unknown insertion spec %T", spec)
}

// parentOffset converts p to frame coordinates relative to the target's
// padding box. It returns nil when p falls outside the padding box.
func parentOffset(v View, nb *NodeBox, p geom.Pt) *geom.Pt {
	toFrame := v.ClientToFrame()
	box := toFrame.ApplyBox(nb.PaddingBox)
	fp := toFrame.Apply(p)
	if !box.Contains(fp) {
		return nil
	}
	off := fp.Sub(box.TopLeft())
	return &off
}

// commitOrder returns nodes in the order they must be inserted for spec so
// that they keep their relative order around the anchor.
func commitOrder(spec InsertionSpec, nodes []TemplateID) []TemplateID {
	out := append([]TemplateID(nil), nodes...)
	if shouldReverse(spec) {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
