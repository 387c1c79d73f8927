// Package ui shows a document's boxes in a desktop window using Fyne.
//
// The window drives the document: resizing it resizes the document window
// and scrolling over it scrolls the document, so the popper registry's
// listeners reposition floating elements live. All document work happens
// on the Fyne event goroutine, which owns the frame loop while the viewer
// runs.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/layout"
	"github.com/chrisuehlinger/vibepopper/loop"
	"github.com/chrisuehlinger/vibepopper/render"
)

// maxFramesPerInput bounds how many frames one input event may pump, so a
// script that keeps requesting frames cannot stall the UI.
const maxFramesPerInput = 4

var roleColors = map[render.Role]color.NRGBA{
	render.RoleBox:       {R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff},
	render.RoleContainer: {R: 0x58, G: 0x58, B: 0x58, A: 0xff},
	render.RoleReference: {R: 0x00, G: 0xaf, B: 0x87, A: 0xff},
	render.RoleFloating:  {R: 0xff, G: 0xd7, B: 0x00, A: 0xff},
	render.RoleArrow:     {R: 0xd7, G: 0x5f, B: 0x5f, A: 0xff},
}

// Viewer is a window showing one document.
type Viewer struct {
	window fyne.Window
	doc    *dom.Document
	layout *layout.Layout
	loop   *loop.Loop
	logger *zap.Logger
	roles  func() render.RoleFunc
	onKey  func(fyne.KeyName)

	stage *fyne.Container
	boxes map[*dom.Element]*box
}

type box struct {
	rect  *canvas.Rectangle
	label *canvas.Text
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the viewer logger.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Viewer) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithRoles sets how elements are coloured. roles is asked for a fresh
// mapping on every redraw, as poppers come and go.
func WithRoles(roles func() render.RoleFunc) Option {
	return func(v *Viewer) { v.roles = roles }
}

// WithKeyHandler installs a handler for typed keys. The document is
// re-synced after the handler returns.
func WithKeyHandler(fn func(fyne.KeyName)) Option {
	return func(v *Viewer) { v.onKey = fn }
}

// New creates a viewer window sized to the document's viewport.
func New(app fyne.App, title string, l *layout.Layout, lp *loop.Loop, opts ...Option) *Viewer {
	v := &Viewer{
		doc:    l.Document(),
		layout: l,
		loop:   lp,
		logger: zap.NewNop(),
		roles:  func() render.RoleFunc { return render.AllBoxes },
		boxes:  make(map[*dom.Element]*box),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.window = app.NewWindow(title)
	v.window.SetPadded(false)
	v.stage = container.New(&stageLayout{viewer: v}, newScrollCatcher(v.scroll))
	v.window.SetContent(v.stage)
	v.window.Canvas().SetOnTypedKey(v.typedKey)

	win := v.doc.Window()
	v.window.Resize(fyne.NewSize(float32(win.InnerWidth()), float32(win.InnerHeight())))
	return v
}

// Window returns the Fyne window.
func (v *Viewer) Window() fyne.Window {
	return v.window
}

// Run shows the window and runs the application event loop.
func (v *Viewer) Run() {
	v.Sync()
	v.window.ShowAndRun()
}

// Sync pumps pending frames and redraws the boxes.
func (v *Viewer) Sync() {
	v.pump()
	v.draw()
}

// resize propagates a new stage size to the document window. Empty sizes
// come from layout passes before the window is shown and are ignored.
func (v *Viewer) resize(size fyne.Size) {
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	win := v.doc.Window()
	w, h := float64(size.Width), float64(size.Height)
	if w != win.InnerWidth() || h != win.InnerHeight() {
		v.logger.Debug("viewport resized", zap.Float64("width", w), zap.Float64("height", h))
		win.Resize(w, h)
	}
	v.Sync()
}

func (v *Viewer) scroll(dx, dy float32) {
	win := v.doc.Window()
	x := max(0, win.ScrollX()-float64(dx))
	y := max(0, win.ScrollY()-float64(dy))
	win.ScrollTo(x, y)
	v.Sync()
}

func (v *Viewer) typedKey(ev *fyne.KeyEvent) {
	if v.onKey == nil {
		return
	}
	v.onKey(ev.Name)
	v.Sync()
}

func (v *Viewer) pump() {
	for i := 0; i < maxFramesPerInput; i++ {
		if i > 0 && !v.loop.Pending() {
			return
		}
		v.loop.RunFrame()
	}
}

// draw moves one rectangle per visible element into place and hides the
// rectangles of elements that are no longer visible.
func (v *Viewer) draw() {
	seen := make(map[*dom.Element]bool)
	roles := v.roles()
	var visit func(el *dom.Element)
	visit = func(el *dom.Element) {
		if !v.layout.IsVisible(el) {
			return
		}
		if role := roles(el); role != render.RoleNone {
			r := v.layout.Rect(el, false)
			b := v.boxFor(el)
			stroke := roleColors[role]
			b.rect.StrokeColor = stroke
			b.rect.FillColor = color.NRGBA{R: stroke.R, G: stroke.G, B: stroke.B, A: 0x30}
			b.rect.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
			b.rect.Resize(fyne.NewSize(float32(r.Width), float32(r.Height)))
			b.label.Text = el.ID()
			b.label.Color = stroke
			b.label.Move(fyne.NewPos(float32(r.X)+2, float32(r.Y)+1))
			b.rect.Show()
			b.label.Show()
			b.rect.Refresh()
			b.label.Refresh()
			seen[el] = true
		}
		for _, child := range el.Children() {
			visit(child)
		}
	}
	for _, child := range v.doc.Body().Children() {
		visit(child)
	}

	for el, b := range v.boxes {
		if !seen[el] {
			b.rect.Hide()
			b.label.Hide()
		}
	}
}

func (v *Viewer) boxFor(el *dom.Element) *box {
	if b, ok := v.boxes[el]; ok {
		return b
	}
	b := &box{
		rect:  canvas.NewRectangle(color.Transparent),
		label: canvas.NewText("", color.White),
	}
	b.rect.StrokeWidth = 1
	b.label.TextSize = 10
	v.boxes[el] = b
	// Appended directly: Container.Add would re-run the layout that is
	// calling us.
	v.stage.Objects = append(v.stage.Objects, b.rect, b.label)
	return b
}

// stageLayout forwards the stage size to the viewer.
type stageLayout struct {
	viewer *Viewer
}

func (s *stageLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) > 0 {
		objects[0].Move(fyne.NewPos(0, 0))
		objects[0].Resize(size)
	}
	s.viewer.resize(size)
}

func (s *stageLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(160, 120)
}
