package popper

import "strings"

// Placement is the side of the reference the floating node is drawn on.
type Placement string

const (
	Top    Placement = "top"
	Right  Placement = "right"
	Bottom Placement = "bottom"
	Left   Placement = "left"
	// Auto is only valid as an input; it is resolved to one of the four
	// sides on every update.
	Auto Placement = "auto"
)

// ParsePlacement parses a placement name. Unknown values yield Bottom.
func ParsePlacement(s string) Placement {
	switch p := Placement(strings.ToLower(strings.TrimSpace(s))); p {
	case Top, Right, Bottom, Left, Auto:
		return p
	}
	return Bottom
}

// Vertical reports whether p is Top or Bottom.
func (p Placement) Vertical() bool {
	return p == Top || p == Bottom
}

// Opposite returns the placement on the other side of the reference.
func (p Placement) Opposite() Placement {
	switch p {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return p
}

// Position is the cross-axis alignment of the floating node relative to
// the reference.
type Position string

const (
	Start  Position = "start"
	Center Position = "center"
	End    Position = "end"
)

// ParsePosition parses a position name. Unknown values yield Start.
func ParsePosition(s string) Position {
	switch p := Position(strings.ToLower(strings.TrimSpace(s))); p {
	case Start, Center, End:
		return p
	}
	return Start
}
