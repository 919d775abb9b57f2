// Package outline reorders templates by dragging rows of an indented tree.
//
// The outline has no box geometry to hit-test. Each hovered [Row] is split
// into slivers instead: the top and bottom slivers insert above or below
// the row, the middle inserts as a child. Slivers are a quarter of the row
// height when the row accepts children and half of it otherwise, so rows
// that cannot take children have no middle.
//
// Dragging left of the start point by more than the dedent threshold moves
// the target up the ancestor chain, one level per threshold, as long as the
// target is the last child of a parent that accepts the dragged templates as
// siblings. This lets users re-parent a node out of a subtree by dragging
// left.
//
// Acceptance is checked per dragged template and the first refusal wins.
// Drops that stay in one tree move templates directly; drops into another
// tree clone the templates into place and remove the originals.
//
//	m := outline.NewManager(tree, dnd.Options{})
//	if m.DragStart(clips, start) {
//	    m.Drag(pointer, hoveredRow)
//	    inserted, err := m.Drop()
//	}
package outline
