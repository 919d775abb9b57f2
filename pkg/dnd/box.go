package dnd

import (
	"fmt"
	"strings"

	"github.com/matzehuels/droptarget/pkg/geom"
)

// =============================================================================
// Container kinds and styles
// =============================================================================

// ContainerKind describes how a node lays out its children.
type ContainerKind string

const (
	ContainerNone          ContainerKind = ""
	ContainerFree          ContainerKind = "free"
	ContainerFlexRow       ContainerKind = "flex-row"
	ContainerFlexColumn    ContainerKind = "flex-column"
	ContainerGrid          ContainerKind = "grid"
	ContainerContentLayout ContainerKind = "content-layout"
	ContainerSlot          ContainerKind = "slot"
)

// Flows reports whether children of k are laid out in flow order, so that
// dropping between them is meaningful.
func (k ContainerKind) Flows() bool {
	switch k {
	case ContainerFlexRow, ContainerFlexColumn, ContainerGrid, ContainerContentLayout:
		return true
	}
	return false
}

// Style is the effective computed style of a node, keyed by CSS property.
type Style map[string]string

// Get returns the value of prop, or "" when unset.
func (s Style) Get(prop string) string { return strings.TrimSpace(s[prop]) }

// Has reports whether prop is set.
func (s Style) Has(prop string) bool { return s.Get(prop) != "" }

// Kind derives the container kind from display and flex-direction.
func (s Style) Kind() ContainerKind {
	switch s.Get("display") {
	case "flex", "inline-flex":
		if strings.HasPrefix(s.Get("flex-direction"), "column") {
			return ContainerFlexColumn
		}
		return ContainerFlexRow
	case "grid", "inline-grid":
		return ContainerGrid
	case "content-layout":
		return ContainerContentLayout
	}
	return ContainerFree
}

// FlexReverse reports whether a flex container lays out children in reverse.
func (s Style) FlexReverse() bool {
	return strings.HasSuffix(s.Get("flex-direction"), "-reverse")
}

// OutOfFlow reports whether a node with this style is positioned outside
// its parent's flow and so cannot take flow siblings.
func (s Style) OutOfFlow() bool {
	switch s.Get("position") {
	case "absolute", "fixed":
		return true
	}
	switch s.Get("float") {
	case "left", "right":
		return true
	}
	return false
}

// =============================================================================
// Elements
// =============================================================================

// Element is one on-screen element of a render pass. Boxes are in client
// coordinates except Scaled, which is in scaled-canvas coordinates, and
// Bounds, which is in frame coordinates.
type Element struct {
	ID       string
	Box      geom.Box // border box
	Padding  geom.Box // padding box
	Scaled   geom.Box
	Bounds   geom.Box
	Hidden   bool // no layout box, e.g. display: none
	Children []*Element
}

func (e *Element) String() string { return "el(" + e.ID + ")" }

// =============================================================================
// Grid
// =============================================================================

// Track is one grid row or column in client coordinates.
type Track struct {
	Start, Size float64
}

// GridInfo describes the tracks of a CSS grid container.
type GridInfo struct {
	Rows []Track
	Cols []Track
}

// Span is an inclusive range of 1-based grid lines.
type Span struct {
	Start, End int
}

// GridArea is the cell range a grid insertion occupies.
type GridArea struct {
	Rows Span
	Cols Span
}

func (a GridArea) String() string {
	return fmt.Sprintf("rows %d/%d cols %d/%d", a.Rows.Start, a.Rows.End, a.Cols.Start, a.Cols.End)
}

// CellAt returns the 1-based row and column of the track containing p.
// Points before the first track or past the last one clamp to it.
func (g *GridInfo) CellAt(p geom.Pt) (row, col int) {
	return trackAt(g.Rows, p.Y), trackAt(g.Cols, p.X)
}

func trackAt(tracks []Track, v float64) int {
	if len(tracks) == 0 {
		return 1
	}
	for i, t := range tracks {
		if v < t.Start+t.Size {
			return i + 1
		}
	}
	return len(tracks)
}

// =============================================================================
// Node and insertion boxes
// =============================================================================

// NodeBox is the hit-testing record for one visible selectable. It is never
// mutated after the index is built.
type NodeBox struct {
	Selectable Selectable
	Element    *Element
	Box        geom.Box // client border box
	PaddingBox geom.Box
	ScaledBox  geom.Box

	// FlowDir is the direction siblings flow in the parent container.
	FlowDir       geom.Orientation
	InFlex        bool
	InFlexReverse bool

	// AcceptsChildren is nil when children may be dropped in.
	AcceptsChildren *Reason
	AcceptsSiblings bool

	Grid      *GridInfo
	Container ContainerKind
}

func (nb *NodeBox) String() string {
	return fmt.Sprintf("NodeBox[%s %s %s]", nb.Selectable.Key(), nb.Container, nb.Box)
}

// Loc is where an insertion lands relative to its anchor.
type Loc string

const (
	LocBefore Loc = "before"
	LocAfter  Loc = "after"
	LocTop    Loc = "top"
	LocRight  Loc = "right"
	LocBottom Loc = "bottom"
	LocLeft   Loc = "left"
)

// IsTrailing reports whether the insertion goes after its anchor in
// document order.
func (l Loc) IsTrailing() bool {
	return l == LocAfter || l == LocBottom || l == LocRight
}

func sideLoc(s geom.Side) Loc {
	switch s {
	case geom.SideTop:
		return LocTop
	case geom.SideRight:
		return LocRight
	case geom.SideBottom:
		return LocBottom
	default:
		return LocLeft
	}
}

// InsertionBox is a thin strip along the leading or trailing edge of a node
// that accepts siblings.
type InsertionBox struct {
	Loc     Loc
	Anchor  *RenderedNode
	Element *Element
	Box     geom.Box
	FlowDir geom.Orientation
}

func (ib *InsertionBox) String() string {
	return fmt.Sprintf("InsertionBox[%s %s %s]", ib.Loc, ib.Anchor.ID, ib.Box)
}

// BeforeAfter holds the insertion boxes built for one node box.
type BeforeAfter struct {
	Before *InsertionBox
	After  *InsertionBox
}
