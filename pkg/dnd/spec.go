package dnd

import (
	"fmt"

	"github.com/matzehuels/droptarget/pkg/geom"
)

// InsertionSpec is the resolved drop target of one pointer position. It is
// one of [*FreeInsertion], [*SiblingInsertion], [*GridInsertion] or
// [*RejectedInsertion]. A nil InsertionSpec means nothing is targeted.
type InsertionSpec interface {
	// Kind is "free", "sibling", "grid" or "rejected".
	Kind() string
	insertionSpec()
}

// FreeInsertion drops into Target as a child. Slotted children join the
// parent's flow; the others are absolutely positioned at Point.
type FreeInsertion struct {
	Target  *NodeBox
	Slotted bool
	Point   geom.Pt // client coordinates, cursor offset applied
}

// SiblingInsertion drops next to an existing node.
type SiblingInsertion struct {
	Box *InsertionBox
}

// GridInsertion drops into one cell of a grid container.
type GridInsertion struct {
	Target *NodeBox
	Area   GridArea
}

// RejectedInsertion marks a position where the document refuses the drop.
type RejectedInsertion struct {
	Target *NodeBox
	Reason *Reason
}

func (*FreeInsertion) Kind() string     { return "free" }
func (*SiblingInsertion) Kind() string  { return "sibling" }
func (*GridInsertion) Kind() string     { return "grid" }
func (*RejectedInsertion) Kind() string { return "rejected" }

func (*FreeInsertion) insertionSpec()     {}
func (*SiblingInsertion) insertionSpec()  {}
func (*GridInsertion) insertionSpec()     {}
func (*RejectedInsertion) insertionSpec() {}

func (s *FreeInsertion) String() string {
	mode := "free"
	if s.Slotted {
		mode = "slotted"
	}
	return fmt.Sprintf("child of %s (%s) at %s", s.Target.Selectable.Key(), mode, s.Point)
}

func (s *SiblingInsertion) String() string {
	return fmt.Sprintf("%s %s", s.Box.Loc, s.Box.Anchor.ID)
}

func (s *GridInsertion) String() string {
	return fmt.Sprintf("cell of %s %s", s.Target.Selectable.Key(), s.Area)
}

func (s *RejectedInsertion) String() string {
	return fmt.Sprintf("rejected by %s: %s", s.Target.Selectable.Key(), s.Reason)
}

// Describe renders spec for logs and reports; nil renders as "nothing".
func Describe(spec InsertionSpec) string {
	if spec == nil {
		return "nothing"
	}
	if s, ok := spec.(fmt.Stringer); ok {
		return s.String()
	}
	return spec.Kind()
}

// IsRejected reports whether spec is a [*RejectedInsertion].
func IsRejected(spec InsertionSpec) bool {
	_, ok := spec.(*RejectedInsertion)
	return ok
}

// shouldReverse reports whether a multi-node drop must insert in reverse so
// the nodes keep their relative order after the anchor.
func shouldReverse(spec InsertionSpec) bool {
	s, ok := spec.(*SiblingInsertion)
	return ok && s.Box.Loc.IsTrailing()
}

// MarkerBox returns the box a UI highlights for spec. Sibling strips are
// narrowed by the marker inset along the flow axis, which collapses a
// default strip to a line on the anchor's edge.
func MarkerBox(spec InsertionSpec, cfg Config) (geom.Box, bool) {
	switch s := spec.(type) {
	case *SiblingInsertion:
		if s.Box.FlowDir == geom.Horizontal {
			return s.Box.Box.Pad(-cfg.MarkerInset, 0), true
		}
		return s.Box.Box.Pad(0, -cfg.MarkerInset), true
	case *FreeInsertion:
		return s.Target.Box, true
	case *GridInsertion:
		return s.Target.Box, true
	case *RejectedInsertion:
		return s.Target.Box, true
	}
	return geom.Box{}, false
}
