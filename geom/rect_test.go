package geom

import (
	"testing"
)

func TestRect_Edges(t *testing.T) {
	r := NewRect(10, 20, 100, 50)
	if r.Top() != 20 {
		t.Errorf("Expected Top=20, got %v", r.Top())
	}
	if r.Left() != 10 {
		t.Errorf("Expected Left=10, got %v", r.Left())
	}
	if r.Right() != 110 {
		t.Errorf("Expected Right=110, got %v", r.Right())
	}
	if r.Bottom() != 70 {
		t.Errorf("Expected Bottom=70, got %v", r.Bottom())
	}
}

func TestRect_NegativeExtent(t *testing.T) {
	r := NewRect(100, 100, -50, -30)
	if r.Left() != 50 || r.Right() != 100 {
		t.Errorf("Expected horizontal edges 50..100, got %v..%v", r.Left(), r.Right())
	}
	if r.Top() != 70 || r.Bottom() != 100 {
		t.Errorf("Expected vertical edges 70..100, got %v..%v", r.Top(), r.Bottom())
	}
}

func TestBounds_Tighten(t *testing.T) {
	window := NewRect(0, 0, 800, 600).Bounds()
	scroller := NewRect(50, -20, 900, 400)
	container := NewRect(-10, 100, 500, 600)

	b := window.Tighten(scroller).Tighten(container)
	want := Bounds{Top: 100, Right: 490, Bottom: 380, Left: 50}
	if b != want {
		t.Errorf("Expected %+v, got %+v", want, b)
	}
	if b.Width() != 440 || b.Height() != 280 {
		t.Errorf("Expected 440x280, got %vx%v", b.Width(), b.Height())
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name           string
		a0, a1, b0, b1 float64
		want           float64
	}{
		{"contained", 0, 100, 20, 40, 20},
		{"partial", 0, 100, 80, 140, 20},
		{"touching", 0, 100, 100, 120, 0},
		{"disjoint", 0, 100, 150, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(tt.a0, tt.a1, tt.b0, tt.b1); got != tt.want {
				t.Errorf("Overlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPoint_Round(t *testing.T) {
	p := Point{X: 10.4, Y: -3.6}.Round()
	if p.X != 10 || p.Y != -4 {
		t.Errorf("Expected (10,-4), got (%v,%v)", p.X, p.Y)
	}
}
