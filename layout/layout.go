// Package layout computes element boxes for the document model using an
// absolute-positioning box model: every element is placed at its
// containing block's origin, shifted by its left/top offsets, margins and
// translate transforms. There is no flow layout.
package layout

import (
	"github.com/chrisuehlinger/vibepopper/css"
	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/geom"
)

// Layout measures elements of a single document. Boxes are recomputed on
// every call so style mutations are reflected immediately.
type Layout struct {
	doc *dom.Document
}

// New creates a layout for doc.
func New(doc *dom.Document) *Layout {
	return &Layout{doc: doc}
}

// Document returns the measured document.
func (l *Layout) Document() *dom.Document {
	return l.doc
}

// Rect returns the border box of el. With offset set the rectangle is
// document-relative; otherwise it is viewport-relative.
func (l *Layout) Rect(el *dom.Element, offset bool) geom.Rect {
	r := l.box(el)
	if offset {
		return r
	}
	win := l.doc.Window()
	return r.Translate(-win.ScrollX(), -win.ScrollY())
}

// WindowRect returns the viewport rectangle, document-relative with offset
// set and anchored at the origin otherwise.
func (l *Layout) WindowRect(offset bool) geom.Rect {
	win := l.doc.Window()
	r := geom.NewRect(0, 0, win.InnerWidth(), win.InnerHeight())
	if offset {
		r = r.Translate(win.ScrollX(), win.ScrollY())
	}
	return r
}

// box computes the document-relative border box of el.
func (l *Layout) box(el *dom.Element) geom.Rect {
	var origin geom.Point
	position := el.ComputedStyle("position")

	switch position {
	case "fixed":
		win := l.doc.Window()
		origin = geom.Point{X: win.ScrollX(), Y: win.ScrollY()}
	case "absolute":
		if cb := l.OffsetParent(el); cb != nil {
			origin = l.contentOrigin(cb)
		}
	default:
		if p := el.Parent(); p != nil {
			origin = l.contentOrigin(p)
		}
	}

	x, y := origin.X, origin.Y
	if position != "static" {
		x += css.LengthOr(el.ComputedStyle("left"), 0)
		y += css.LengthOr(el.ComputedStyle("top"), 0)
	}
	x += css.LengthOr(el.ComputedStyle("margin-left"), 0)
	y += css.LengthOr(el.ComputedStyle("margin-top"), 0)

	tx, ty := css.ParseTranslate(el.ComputedStyle("transform"))
	x += tx
	y += ty

	return geom.NewRect(x, y,
		css.LengthOr(el.ComputedStyle("width"), 0),
		css.LengthOr(el.ComputedStyle("height"), 0))
}

// contentOrigin is where children of el are placed: its origin shifted by
// its scroll offsets.
func (l *Layout) contentOrigin(el *dom.Element) geom.Point {
	o := l.box(el).Origin()
	return geom.Point{X: o.X - el.ScrollLeft(), Y: o.Y - el.ScrollTop()}
}

// IsVisible reports whether el is connected and rendered: neither it nor
// an ancestor is display:none, it is not visibility:hidden, and no
// clipping ancestor has collapsed to zero size.
func (l *Layout) IsVisible(el *dom.Element) bool {
	if el == nil || !el.IsConnected() {
		return false
	}
	if el.ComputedStyle("visibility") == "hidden" {
		return false
	}
	for n := el; n != nil; n = n.Parent() {
		if n.ComputedStyle("display") == "none" {
			return false
		}
		if n != el && clips(n) && l.box(n).IsEmpty() {
			return false
		}
	}
	return true
}

// IsFixed reports whether el or one of its ancestors is position:fixed.
func (l *Layout) IsFixed(el *dom.Element) bool {
	return el.Closest(func(n *dom.Element) bool {
		return n.ComputedStyle("position") == "fixed"
	}, nil) != nil
}

// OffsetParent returns the nearest positioned ancestor of el, or nil when
// el is positioned against the document.
func (l *Layout) OffsetParent(el *dom.Element) *dom.Element {
	if el.Parent() == nil {
		return nil
	}
	return el.Parent().Closest(isPositioned, nil)
}

// ScrollParent returns the nearest positioned ancestor of el with
// scrollable overflow, or nil.
func (l *Layout) ScrollParent(el *dom.Element) *dom.Element {
	if el.Parent() == nil {
		return nil
	}
	return el.Parent().Closest(func(n *dom.Element) bool {
		return isPositioned(n) && scrolls(n)
	}, nil)
}

func isPositioned(el *dom.Element) bool {
	return el.ComputedStyle("position") != "static"
}

func scrolls(el *dom.Element) bool {
	for _, prop := range []string{"overflow-x", "overflow-y"} {
		switch el.ComputedStyle(prop) {
		case "auto", "scroll":
			return true
		}
	}
	return false
}

func clips(el *dom.Element) bool {
	for _, prop := range []string{"overflow-x", "overflow-y"} {
		if el.ComputedStyle(prop) != "visible" {
			return true
		}
	}
	return false
}
