package popper

import (
	"math"

	"github.com/chrisuehlinger/vibepopper/geom"
)

// placementPadding is added to the configured spacing when deciding the
// placement, but not when computing the offset.
const placementPadding = 2

// Spaces holds the room between the reference and the minimum box on
// each side.
type Spaces struct {
	Top, Right, Bottom, Left float64
}

// SpaceAround measures the available space around ref inside min.
func SpaceAround(ref geom.Rect, min geom.Bounds) Spaces {
	return Spaces{
		Top:    ref.Top() - min.Top,
		Right:  min.Right - ref.Right(),
		Bottom: min.Bottom - ref.Bottom(),
		Left:   ref.Left() - min.Left,
	}
}

// On returns the space on the given side.
func (s Spaces) On(p Placement) float64 {
	switch p {
	case Top:
		return s.Top
	case Right:
		return s.Right
	case Left:
		return s.Left
	}
	return s.Bottom
}

// extent returns the node dimension that must fit on side p.
func extent(node geom.Rect, p Placement) float64 {
	if p.Vertical() {
		return node.Height
	}
	return node.Width
}

// ResolvePlacement picks the side of ref to draw node on. An explicit
// placement flips to the opposite side only when the node does not fit and
// the opposite side has strictly more room. Auto chooses an axis and side
// from the available space.
func ResolvePlacement(node, ref geom.Rect, min geom.Bounds, placement Placement, spacing float64) Placement {
	spaces := SpaceAround(ref, min)

	switch placement {
	case Top, Right, Bottom, Left:
		opposite := placement.Opposite()
		if spaces.On(placement) < extent(node, placement)+spacing && spaces.On(opposite) > spaces.On(placement) {
			return opposite
		}
		return placement
	case Auto:
		return autoPlacement(node, ref, spaces, spacing)
	}
	return Bottom
}

func autoPlacement(node, ref geom.Rect, s Spaces, spacing float64) Placement {
	maxV := math.Max(s.Top, s.Bottom)
	minV := math.Min(s.Top, s.Bottom)
	maxH := math.Max(s.Left, s.Right)
	minH := math.Min(s.Left, s.Right)

	freeH := maxH - (node.Width + spacing)
	freeV := maxV - (node.Height + spacing)

	if freeH > freeV && freeH >= 0 && crossFits(minV, ref.Height, node.Height, spacing) {
		if s.Left > s.Right {
			return Left
		}
		return Right
	}

	if freeV >= 0 && crossFits(minH, ref.Width, node.Width, spacing) {
		if s.Top > s.Bottom {
			return Top
		}
		return Bottom
	}

	maxSpace := math.Max(maxV, maxH)
	for _, p := range []Placement{Bottom, Top, Right, Left} {
		space := s.On(p)
		if space == maxSpace && space >= extent(node, p)+spacing {
			return p
		}
	}
	return Bottom
}

// crossFits reports whether the node still has room along the cross axis:
// the smaller cross-axis space plus the reference extent must cover the
// node extent plus spacing, less whatever the node overhangs the reference.
func crossFits(minSpace, refExtent, nodeExtent, spacing float64) bool {
	overhang := math.Max(0, nodeExtent-refExtent)
	return minSpace+refExtent >= nodeExtent+spacing-overhang
}

// PlacementOffset returns the displacement of the node origin from the
// reference origin for the given placement and cross-axis position.
func PlacementOffset(node, ref geom.Rect, placement Placement, position Position, spacing float64) geom.Point {
	var d geom.Point

	switch placement {
	case Top:
		d.Y -= node.Height + spacing
	case Bottom:
		d.Y += ref.Height + spacing
	case Left:
		d.X -= node.Width + spacing
	case Right:
		d.X += ref.Width + spacing
	}

	if placement.Vertical() {
		delta := node.Width - ref.Width
		switch position {
		case Center:
			d.X -= delta / 2
		case End:
			d.X -= delta
		}
	} else {
		delta := node.Height - ref.Height
		switch position {
		case Center:
			d.Y -= delta / 2
		case End:
			d.Y -= delta
		}
	}
	return d
}

// minContactFor returns the configured minimum contact, or the smaller of
// the two extents when unset.
func minContactFor(minContact *float64, refExtent, nodeExtent float64) float64 {
	if minContact != nil {
		return *minContact
	}
	return math.Min(refExtent, nodeExtent)
}

// Constrain pushes the node back inside min along the cross axis while
// keeping at least minContact pixels of overlap with the reference.
//
// offset is expressed relative to frame; frame+offset is the node origin
// in the measurement frame of node, ref and min.
func Constrain(offset, frame geom.Point, node, ref geom.Rect, min geom.Bounds, placement Placement, minContact *float64) geom.Point {
	abs := offset.Add(frame)

	if placement.Vertical() {
		contact := minContactFor(minContact, ref.Width, node.Width)
		abs.X = clampAxis(abs.X, node.Width, ref.Left(), ref.Width, min.Left, min.Right, contact)
	} else {
		contact := minContactFor(minContact, ref.Height, node.Height)
		abs.Y = clampAxis(abs.Y, node.Height, ref.Top(), ref.Height, min.Top, min.Bottom, contact)
	}

	return abs.Sub(frame)
}

// clampAxis clamps a node start coordinate against [lo, hi] on one axis.
func clampAxis(pos, size, refStart, refSize, lo, hi, contact float64) float64 {
	if pos+size > hi {
		target := pos - (pos + size - hi)
		floor := refStart - size + contact
		pos = math.Max(target, math.Min(floor, pos))
	}
	if pos < lo {
		target := lo
		ceil := refStart + refSize - contact
		pos = math.Min(target, math.Max(ceil, pos))
	}
	return pos
}
