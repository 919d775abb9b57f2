package geom

import (
	"fmt"
	"math"
)

// =============================================================================
// Points
// =============================================================================

// Pt is a two dimensional point or vector.
type Pt struct {
	X, Y float64
}

// Add returns p+q.
func (p Pt) Add(q Pt) Pt { return Pt{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector p-q.
func (p Pt) Sub(q Pt) Pt { return Pt{X: p.X - q.X, Y: p.Y - q.Y} }

// MoveBy returns p translated by (dx, dy).
func (p Pt) MoveBy(dx, dy float64) Pt { return Pt{X: p.X + dx, Y: p.Y + dy} }

// Scale returns p with both coordinates multiplied by s.
func (p Pt) Scale(s float64) Pt { return Pt{X: p.X * s, Y: p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func (p Pt) Dist(q Pt) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

func (p Pt) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// =============================================================================
// Orientation and sides
// =============================================================================

// Orientation is the axis along which siblings flow.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Side names one edge of a box.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// Sides lists all sides in the order used for tie-breaking.
var Sides = [...]Side{SideTop, SideRight, SideBottom, SideLeft}

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Orient maps a side to the direction it controls: left and right move along
// the horizontal axis, top and bottom along the vertical one.
func (s Side) Orient() Orientation {
	if s == SideLeft || s == SideRight {
		return Horizontal
	}
	return Vertical
}

// Opposite returns the side across the box from s.
func (s Side) Opposite() Side { return (s + 2) % 4 }

// =============================================================================
// Boxes
// =============================================================================

// Box is an axis-aligned rectangle. The zero value is an empty box at the origin.
type Box struct {
	Top, Left     float64
	Width, Height float64
}

// NewBox returns the box with the given top-left corner and size.
func NewBox(top, left, width, height float64) Box {
	return Box{Top: top, Left: left, Width: width, Height: height}
}

// FromSides builds a box from its four edges.
func FromSides(top, left, right, bottom float64) Box {
	return Box{Top: top, Left: left, Width: right - left, Height: bottom - top}
}

// Spanning returns the smallest box with a and b as opposite corners.
func Spanning(a, b Pt) Box {
	return FromSides(math.Min(a.Y, b.Y), math.Min(a.X, b.X), math.Max(a.X, b.X), math.Max(a.Y, b.Y))
}

// Merge returns the bounding box of all boxes. It reports false when boxes is empty.
func Merge(boxes ...Box) (Box, bool) {
	if len(boxes) == 0 {
		return Box{}, false
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = FromSides(
			math.Min(out.Top, b.Top),
			math.Min(out.Left, b.Left),
			math.Max(out.Right(), b.Right()),
			math.Max(out.Bottom(), b.Bottom()),
		)
	}
	return out, true
}

// Right returns the right edge.
func (b Box) Right() float64 { return b.Left + b.Width }

// Bottom returns the bottom edge.
func (b Box) Bottom() float64 { return b.Top + b.Height }

// XMid returns the horizontal center.
func (b Box) XMid() float64 { return b.Left + b.Width/2 }

// YMid returns the vertical center.
func (b Box) YMid() float64 { return b.Top + b.Height/2 }

// Mid returns the center point.
func (b Box) Mid() Pt { return Pt{X: b.XMid(), Y: b.YMid()} }

// TopLeft returns the top-left corner.
func (b Box) TopLeft() Pt { return Pt{X: b.Left, Y: b.Top} }

// TopRight returns the top-right corner.
func (b Box) TopRight() Pt { return Pt{X: b.Right(), Y: b.Top} }

// BottomLeft returns the bottom-left corner.
func (b Box) BottomLeft() Pt { return Pt{X: b.Left, Y: b.Bottom()} }

// BottomRight returns the bottom-right corner.
func (b Box) BottomRight() Pt { return Pt{X: b.Right(), Y: b.Bottom()} }

// Empty reports whether b has no area.
func (b Box) Empty() bool { return b.Width <= 0 || b.Height <= 0 }

// Contains reports whether p lies in b. The left and top edges are inclusive,
// the right and bottom edges exclusive.
func (b Box) Contains(p Pt) bool {
	return b.Left <= p.X && p.X < b.Right() && b.Top <= p.Y && p.Y < b.Bottom()
}

// ContainsBox reports whether o lies entirely within b, edges included.
func (b Box) ContainsBox(o Box) bool {
	return b.Left <= o.Left && b.Right() >= o.Right() && b.Top <= o.Top && b.Bottom() >= o.Bottom()
}

// Intersect returns the overlapping part of b and o. It reports false when
// the boxes do not overlap; boxes that merely touch do not overlap.
func (b Box) Intersect(o Box) (Box, bool) {
	top := math.Max(b.Top, o.Top)
	left := math.Max(b.Left, o.Left)
	right := math.Min(b.Right(), o.Right())
	bottom := math.Min(b.Bottom(), o.Bottom())
	if left >= right || top >= bottom {
		return Box{}, false
	}
	return FromSides(top, left, right, bottom), true
}

// Pad grows b by padWidth on the left and right and padHeight on the top and
// bottom. Negative values shrink it.
func (b Box) Pad(padWidth, padHeight float64) Box {
	return Box{
		Top:    b.Top - padHeight,
		Left:   b.Left - padWidth,
		Width:  b.Width + 2*padWidth,
		Height: b.Height + 2*padHeight,
	}
}

// MoveBy returns b translated by (dx, dy).
func (b Box) MoveBy(dx, dy float64) Box {
	b.Left += dx
	b.Top += dy
	return b
}

// Scale multiplies position and size by s.
func (b Box) Scale(s float64) Box {
	return Box{Top: b.Top * s, Left: b.Left * s, Width: b.Width * s, Height: b.Height * s}
}

// LeftHalf returns the left half of b.
func (b Box) LeftHalf() Box { return Box{Top: b.Top, Left: b.Left, Width: b.Width / 2, Height: b.Height} }

// TopHalf returns the top half of b.
func (b Box) TopHalf() Box { return Box{Top: b.Top, Left: b.Left, Width: b.Width, Height: b.Height / 2} }

// Dist approximates the distance from b to p as the distance from b's center.
func (b Box) Dist(p Pt) float64 { return b.Mid().Dist(p) }

// SideMid returns the midpoint of the given edge.
func (b Box) SideMid(s Side) Pt {
	switch s {
	case SideTop:
		return Pt{X: b.XMid(), Y: b.Top}
	case SideRight:
		return Pt{X: b.Right(), Y: b.YMid()}
	case SideBottom:
		return Pt{X: b.XMid(), Y: b.Bottom()}
	default:
		return Pt{X: b.Left, Y: b.YMid()}
	}
}

// ClosestSide returns the side whose midpoint is nearest to p. Ties go to
// the earlier side in [Sides].
func (b Box) ClosestSide(p Pt) Side {
	best, bestDist := SideTop, math.Inf(1)
	for _, s := range Sides {
		if d := b.SideMid(s).Dist(p); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// SideBox returns the zero-thickness box covering the given edge.
func (b Box) SideBox(s Side) Box {
	switch s {
	case SideTop:
		return Spanning(b.TopLeft(), b.TopRight())
	case SideRight:
		return Spanning(b.TopRight(), b.BottomRight())
	case SideBottom:
		return Spanning(b.BottomLeft(), b.BottomRight())
	default:
		return Spanning(b.TopLeft(), b.BottomLeft())
	}
}

func (b Box) String() string {
	return fmt.Sprintf("Box[x=%g,y=%g,w=%g,h=%g]", b.Left, b.Top, b.Width, b.Height)
}

// =============================================================================
// Transforms
// =============================================================================

// Transform maps a point p to p*Scale + Offset. The zero value is not the
// identity; use [Identity].
type Transform struct {
	Scale  float64
	Offset Pt
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform { return Transform{Scale: 1} }

// Apply transforms p.
func (t Transform) Apply(p Pt) Pt { return p.Scale(t.Scale).Add(t.Offset) }

// ApplyBox transforms both corners of b.
func (t Transform) ApplyBox(b Box) Box {
	return Spanning(t.Apply(b.TopLeft()), t.Apply(b.BottomRight()))
}

// Invert returns the transform that undoes t. A zero scale inverts to the identity.
func (t Transform) Invert() Transform {
	if t.Scale == 0 {
		return Identity()
	}
	inv := 1 / t.Scale
	return Transform{Scale: inv, Offset: t.Offset.Scale(-inv)}
}
