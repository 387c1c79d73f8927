package popper

import (
	"math"

	"github.com/chrisuehlinger/vibepopper/css"
	"github.com/chrisuehlinger/vibepopper/geom"
)

// ArrowPlacement is the arrow's position inside the floating node.
type ArrowPlacement struct {
	// Edge is the node edge the arrow sits flush against ("top", "right",
	// "bottom" or "left") and EdgeOffset its (negative) inset.
	Edge       string
	EdgeOffset float64
	// Along is the in-axis property ("left" or "top") and Offset its value.
	Along  string
	Offset float64
}

// ArrowOffset positions an arrow of the given size on the node edge facing
// the reference. node is the node's final box and ref the reference box,
// both in the same frame.
func ArrowOffset(arrow, node, ref geom.Rect, placement Placement, position Position) ArrowPlacement {
	var a ArrowPlacement

	var nodeStart, nodeSize, refStart, refSize, arrowSize float64
	if placement.Vertical() {
		a.Along = "left"
		a.EdgeOffset = -arrow.Height
		if placement == Top {
			a.Edge = "bottom"
		} else {
			a.Edge = "top"
		}
		nodeStart, nodeSize = node.Left(), node.Width
		refStart, refSize = ref.Left(), ref.Width
		arrowSize = arrow.Width
	} else {
		a.Along = "top"
		a.EdgeOffset = -arrow.Width
		if placement == Left {
			a.Edge = "right"
		} else {
			a.Edge = "left"
		}
		nodeStart, nodeSize = node.Top(), node.Height
		refStart, refSize = ref.Top(), ref.Height
		arrowSize = arrow.Height
	}

	offset := nodeSize/2 - arrowSize/2
	delta := (refSize - nodeSize) / 2
	switch position {
	case Start:
		offset += delta
	case End:
		offset -= delta
	}

	// Keep the arrow inside the overlap of node and reference, in node
	// coordinates.
	lo := math.Max(0, refStart-nodeStart)
	hi := math.Min(nodeSize, refStart+refSize-nodeStart) - arrowSize
	if refSize < arrowSize {
		center := refStart - nodeStart + refSize/2 - arrowSize/2
		lo, hi = center, center
	}
	if hi < lo {
		hi = lo
	}
	a.Offset = math.Min(math.Max(offset, lo), hi)
	return a
}

// Style converts the arrow placement into inline style properties,
// clearing the sides that are not used.
func (a ArrowPlacement) Style() map[string]string {
	style := map[string]string{
		"position": "absolute",
		"top":      "",
		"right":    "",
		"bottom":   "",
		"left":     "",
	}
	style[a.Edge] = css.Px(a.EdgeOffset)
	style[a.Along] = css.Px(math.Round(a.Offset))
	return style
}
