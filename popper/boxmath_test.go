package popper

import (
	"fmt"
	"math"
	"testing"

	"github.com/chrisuehlinger/vibepopper/geom"
)

var viewport = geom.Bounds{Top: 0, Right: 800, Bottom: 600, Left: 0}

// box builds a rect from edges, matching how the scenarios are written.
func box(top, right, bottom, left float64) geom.Rect {
	return geom.NewRect(left, top, right-left, bottom-top)
}

func TestResolvePlacement_ScenarioA(t *testing.T) {
	ref := box(500, 200, 520, 100)
	node := geom.NewRect(0, 0, 100, 150)
	got := ResolvePlacement(node, ref, viewport, Bottom, 8+placementPadding)
	if got != Top {
		t.Errorf("Expected top, got %s", got)
	}
}

func TestResolvePlacement_ScenarioB(t *testing.T) {
	ref := box(10, 110, 30, 10)
	node := geom.NewRect(0, 0, 200, 50)
	for _, spacing := range []float64{4, 4 + placementPadding} {
		if got := ResolvePlacement(node, ref, viewport, Auto, spacing); got != Bottom {
			t.Errorf("spacing %v: expected bottom, got %s", spacing, got)
		}
	}
}

func TestResolvePlacement_Flip(t *testing.T) {
	tests := []struct {
		name      string
		ref       geom.Rect
		node      geom.Rect
		requested Placement
		want      Placement
	}{
		{"bottom flips to top", box(500, 200, 520, 100), geom.NewRect(0, 0, 50, 150), Bottom, Top},
		{"top flips to bottom", box(20, 200, 40, 100), geom.NewRect(0, 0, 50, 150), Top, Bottom},
		{"right flips to left", box(100, 780, 120, 700), geom.NewRect(0, 0, 150, 20), Right, Left},
		{"left flips to right", box(100, 60, 120, 10), geom.NewRect(0, 0, 150, 20), Left, Right},
		{"bottom fits", box(100, 200, 120, 100), geom.NewRect(0, 0, 50, 150), Bottom, Bottom},
		{"no room either side keeps request", box(0, 200, 600, 100), geom.NewRect(0, 0, 50, 150), Top, Top},
		{"opposite not strictly larger", box(290, 200, 310, 100), geom.NewRect(0, 0, 50, 400), Bottom, Bottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePlacement(tt.node, tt.ref, viewport, tt.requested, 10); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolvePlacement_Auto(t *testing.T) {
	tests := []struct {
		name string
		ref  geom.Rect
		node geom.Rect
		want Placement
	}{
		{"wide gap on the right", box(250, 60, 350, 10), geom.NewRect(0, 0, 200, 80), Right},
		{"wide gap on the left", box(250, 790, 350, 740), geom.NewRect(0, 0, 200, 80), Left},
		{"more room above", box(500, 450, 520, 350), geom.NewRect(0, 0, 120, 60), Top},
		{"fallback to largest side", box(0, 800, 30, 0), geom.NewRect(0, 0, 900, 100), Bottom},
		{"nothing fits", box(0, 800, 600, 0), geom.NewRect(0, 0, 10, 10), Bottom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePlacement(tt.node, tt.ref, viewport, Auto, 6); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolvePlacement_AutoDeterministic(t *testing.T) {
	for i := 0; i < 50; i++ {
		ref := box(float64(i*11%500), float64(i*17%700+60), float64(i*11%500+30), float64(i*17%700))
		node := geom.NewRect(0, 0, float64(40+i*7%300), float64(30+i*13%200))
		first := ResolvePlacement(node, ref, viewport, Auto, 6)
		for j := 0; j < 3; j++ {
			if got := ResolvePlacement(node, ref, viewport, Auto, 6); got != first {
				t.Fatalf("case %d: got %s then %s", i, first, got)
			}
		}
	}
}

func TestPlacementOffset(t *testing.T) {
	ref := geom.NewRect(100, 100, 100, 20)
	node := geom.NewRect(0, 0, 200, 50)
	tests := []struct {
		placement Placement
		position  Position
		want      geom.Point
	}{
		{Top, Start, geom.Point{X: 0, Y: -54}},
		{Top, Center, geom.Point{X: -50, Y: -54}},
		{Bottom, End, geom.Point{X: -100, Y: 24}},
		{Left, Start, geom.Point{X: -204, Y: 0}},
		{Right, Center, geom.Point{X: 104, Y: -15}},
		{Right, End, geom.Point{X: 104, Y: -30}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s-%s", tt.placement, tt.position), func(t *testing.T) {
			if got := PlacementOffset(node, ref, tt.placement, tt.position, 4); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestConstrain_ScenarioC(t *testing.T) {
	ref := box(400, 120, 420, 20)
	node := geom.NewRect(0, 0, 150, 300)
	min := geom.Bounds{Top: 0, Right: 800, Bottom: 450, Left: 0}
	contact := 20.0

	offset := geom.Point{X: 120, Y: 400}
	got := Constrain(offset, geom.Point{}, node, ref, min, Right, &contact)
	if got.Y < ref.Top()-node.Height+contact {
		t.Errorf("Expected y >= %v, got %v", ref.Top()-node.Height+contact, got.Y)
	}
	if got.Y != 150 {
		t.Errorf("Expected node pushed up to 150, got %v", got.Y)
	}
	if got.X != 120 {
		t.Errorf("Expected x unchanged, got %v", got.X)
	}

	// A tighter box would need the node to leave the reference; the floor wins.
	min.Bottom = 250
	got = Constrain(offset, geom.Point{}, node, ref, min, Right, &contact)
	if got.Y != 120 {
		t.Errorf("Expected floor at 120, got %v", got.Y)
	}
}

func TestConstrain_FrameIsRespected(t *testing.T) {
	ref := box(400, 120, 420, 20)
	node := geom.NewRect(0, 0, 150, 300)
	min := geom.Bounds{Top: 0, Right: 800, Bottom: 450, Left: 0}
	frame := geom.Point{X: 10, Y: 60}

	got := Constrain(geom.Point{X: 110, Y: 340}, frame, node, ref, min, Left, nil)
	// Node origin is frame+offset = 400, pushed up to 150 in the absolute frame.
	if got.Y != 90 {
		t.Errorf("Expected 90 in frame coordinates, got %v", got.Y)
	}
}

func TestConstrain_MinContactInvariant(t *testing.T) {
	contacts := []*float64{nil, ptr(5), ptr(20), ptr(60)}
	for _, placement := range []Placement{Top, Right, Bottom, Left} {
		for _, contact := range contacts {
			for shift := -400.0; shift <= 400; shift += 37 {
				ref := geom.NewRect(300+shift, 250+shift/2, 60, 40)
				node := geom.NewRect(0, 0, 220, 180)
				min := geom.Bounds{Top: 100, Right: 500, Bottom: 400, Left: 100}

				offset := ref.Origin().Add(PlacementOffset(node, ref, placement, Center, 4))
				got := Constrain(offset, geom.Point{}, node, ref, min, placement, contact)

				// Contact larger than the reference cannot be honoured; the
				// whole reference edge is the best achievable overlap.
				var overlap, want float64
				if placement.Vertical() {
					overlap = geom.Overlap(got.X, got.X+node.Width, ref.Left(), ref.Right())
					want = math.Min(minContactFor(contact, ref.Width, node.Width), ref.Width)
				} else {
					overlap = geom.Overlap(got.Y, got.Y+node.Height, ref.Top(), ref.Bottom())
					want = math.Min(minContactFor(contact, ref.Height, node.Height), ref.Height)
				}
				if overlap < want-1e-9 {
					t.Fatalf("%s contact=%v shift=%v: overlap %v < %v", placement, contact, shift, overlap, want)
				}
			}
		}
	}
}

func TestArrowOffset(t *testing.T) {
	arrow := geom.NewRect(0, 0, 10, 6)

	t.Run("centered under wide reference", func(t *testing.T) {
		ref := geom.NewRect(100, 100, 200, 20)
		node := geom.NewRect(150, 126, 100, 40)
		a := ArrowOffset(arrow, node, ref, Bottom, Center)
		if a.Edge != "top" || a.EdgeOffset != -6 || a.Along != "left" {
			t.Errorf("Unexpected arrow edge %+v", a)
		}
		if a.Offset != 45 {
			t.Errorf("Expected offset 45, got %v", a.Offset)
		}
	})

	t.Run("start aligned", func(t *testing.T) {
		ref := geom.NewRect(100, 100, 60, 20)
		node := geom.NewRect(100, 40, 200, 54)
		a := ArrowOffset(arrow, node, ref, Top, Start)
		if a.Edge != "bottom" {
			t.Errorf("Expected bottom edge, got %s", a.Edge)
		}
		// Centre of the reference in node coordinates, minus half the arrow.
		if a.Offset != 25 {
			t.Errorf("Expected 25, got %v", a.Offset)
		}
	})

	t.Run("clamped into overlap", func(t *testing.T) {
		ref := geom.NewRect(100, 100, 60, 20)
		node := geom.NewRect(130, 126, 200, 40)
		a := ArrowOffset(arrow, node, ref, Bottom, Center)
		if a.Offset < 0 || a.Offset > 30-10 {
			t.Errorf("Expected offset inside [0,20], got %v", a.Offset)
		}
	})

	t.Run("narrow reference", func(t *testing.T) {
		ref := geom.NewRect(200, 100, 20, 4)
		node := geom.NewRect(230, 50, 40, 100)
		a := ArrowOffset(geom.NewRect(0, 0, 6, 10), node, ref, Left, Center)
		if a.Edge != "right" || a.Along != "top" || a.EdgeOffset != -6 {
			t.Errorf("Unexpected arrow %+v", a)
		}
		want := 100.0 - 50 + 2 - 5
		if a.Offset != want {
			t.Errorf("Expected %v, got %v", want, a.Offset)
		}
	})
}

func TestArrowPlacement_Style(t *testing.T) {
	s := ArrowPlacement{Edge: "top", EdgeOffset: -6, Along: "left", Offset: 44.6}.Style()
	if s["top"] != "-6px" || s["left"] != "45px" || s["bottom"] != "" || s["position"] != "absolute" {
		t.Errorf("Unexpected style %v", s)
	}
}

func TestParse(t *testing.T) {
	if ParsePlacement(" TOP ") != Top || ParsePlacement("sideways") != Bottom || ParsePlacement("auto") != Auto {
		t.Error("ParsePlacement returned unexpected values")
	}
	if ParsePosition("End") != End || ParsePosition("") != Start {
		t.Error("ParsePosition returned unexpected values")
	}
}

func ptr(v float64) *float64 {
	return &v
}
