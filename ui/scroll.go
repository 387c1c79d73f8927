package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// scrollCatcher is a transparent widget behind the boxes that turns
// scroll-wheel input into document scrolling.
type scrollCatcher struct {
	widget.BaseWidget
	onScroll func(dx, dy float32)
}

var _ fyne.Scrollable = (*scrollCatcher)(nil)

func newScrollCatcher(onScroll func(dx, dy float32)) *scrollCatcher {
	s := &scrollCatcher{onScroll: onScroll}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget.
func (s *scrollCatcher) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

// Scrolled implements fyne.Scrollable.
func (s *scrollCatcher) Scrolled(ev *fyne.ScrollEvent) {
	s.onScroll(ev.Scrolled.DX, ev.Scrolled.DY)
}
