package dom

// Window is the viewport of a document.
type Window struct {
	doc     *Document
	width   float64
	height  float64
	scrollX float64
	scrollY float64
	events  *EventTarget
}

func newWindow(doc *Document, width, height float64) *Window {
	return &Window{doc: doc, width: width, height: height, events: NewEventTarget()}
}

// Events returns the window's event target.
func (w *Window) Events() *EventTarget {
	return w.events
}

// InnerWidth returns the viewport width.
func (w *Window) InnerWidth() float64 {
	return w.width
}

// InnerHeight returns the viewport height.
func (w *Window) InnerHeight() float64 {
	return w.height
}

// ScrollX returns the document's horizontal scroll offset.
func (w *Window) ScrollX() float64 {
	return w.scrollX
}

// ScrollY returns the document's vertical scroll offset.
func (w *Window) ScrollY() float64 {
	return w.scrollY
}

// Resize changes the viewport size and fires a resize event at the window.
func (w *Window) Resize(width, height float64) {
	w.width = width
	w.height = height
	w.events.invoke(&Event{Type: EventResize}, PhaseAtTarget)
}

// ScrollTo scrolls the document and fires a scroll event targeted at the
// document.
func (w *Window) ScrollTo(x, y float64) {
	w.scrollX = x
	w.scrollY = y
	w.doc.Dispatch(&Event{Type: EventScroll})
}
