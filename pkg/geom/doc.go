// Package geom provides the point and box arithmetic used for canvas hit testing.
//
// All values are float64 CSS pixels. The coordinate space has its origin in
// the top-left corner with the axes extending right and down, so "top" is the
// smallest Y and "left" the smallest X.
//
// # Boxes
//
// A [Box] is stored as top, left, width and height. Containment is half-open:
// a point on the left or top edge is inside, a point on the right or bottom
// edge is not. This keeps adjacent boxes from both claiming a shared edge.
//
//	b := geom.NewBox(0, 0, 100, 40) // top, left, width, height
//	b.Contains(geom.Pt{X: 0, Y: 0})    // true
//	b.Contains(geom.Pt{X: 100, Y: 10}) // false
//
// # Sides
//
// [Side] names one of the four edges of a box. [Box.SideBox] returns the
// zero-thickness strip along an edge, which callers then [Box.Pad] into the
// thin insertion strips used for sibling drops.
//
// # Transforms
//
// [Transform] is a uniform scale followed by a translation. It converts
// between client, frame and scaled-canvas spaces.
package geom
