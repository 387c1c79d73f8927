// Package geom provides the rectangle types shared by layout and positioning.
package geom

import "math"

// Point is a pixel coordinate pair.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Round rounds both coordinates to the nearest integer.
func (p Point) Round() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Rect is a rectangle in some reference frame (document or viewport).
// Width and height are expected to be non-negative; the edge accessors
// normalise negative extents the same way DOMRect does.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from an origin and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Top returns the top edge.
func (r Rect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Right returns the right edge.
func (r Rect) Right() float64 {
	if r.Width < 0 {
		return r.X
	}
	return r.X + r.Width
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 {
	if r.Height < 0 {
		return r.Y
	}
	return r.Y + r.Height
}

// Left returns the left edge.
func (r Rect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.Left(), Y: r.Top()}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

// Bounds converts r into an edge representation.
func (r Rect) Bounds() Bounds {
	return Bounds{Top: r.Top(), Right: r.Right(), Bottom: r.Bottom(), Left: r.Left()}
}

// Bounds is a box expressed by its four edges. It is used for the minimum
// box, which is the tightest intersection of several rectangles.
type Bounds struct {
	Top, Right, Bottom, Left float64
}

// Tighten shrinks b so that it also lies within r. Each edge is clamped
// independently.
func (b Bounds) Tighten(r Rect) Bounds {
	return Bounds{
		Top:    math.Max(b.Top, r.Top()),
		Right:  math.Min(b.Right, r.Right()),
		Bottom: math.Min(b.Bottom, r.Bottom()),
		Left:   math.Max(b.Left, r.Left()),
	}
}

// Width returns the horizontal extent, which may be negative for a box
// tightened to nothing.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent.
func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

// Rect converts b back into origin/size form.
func (b Bounds) Rect() Rect {
	return Rect{X: b.Left, Y: b.Top, Width: b.Width(), Height: b.Height()}
}

// Overlap returns the length of the intersection of [a0, a1] and [b0, b1],
// or zero if they are disjoint.
func Overlap(a0, a1, b0, b1 float64) float64 {
	lo := math.Max(a0, b0)
	hi := math.Min(a1, b1)
	if hi < lo {
		return 0
	}
	return hi - lo
}
