// Package dom provides the document model the positioning engine measures
// and mutates: an element tree with attributes, inline styles, scroll
// offsets and event targets, owned by a Document and its Window.
package dom

// Document is the root of an element tree. It owns the window (viewport)
// and the document-level event target used for capturing scroll listeners.
type Document struct {
	window          *Window
	documentElement *Element
	body            *Element
	events          *EventTarget
}

// NewDocument creates an empty document with an <html><body> skeleton and a
// viewport of the given size.
func NewDocument(viewportWidth, viewportHeight float64) *Document {
	doc := &Document{events: NewEventTarget()}
	doc.window = newWindow(doc, viewportWidth, viewportHeight)
	doc.documentElement = doc.CreateElement("html")
	doc.body = doc.CreateElement("body")
	doc.documentElement.appendChild(doc.body)
	return doc
}

// Window returns the document's window.
func (d *Document) Window() *Window {
	return d.window
}

// DocumentElement returns the root <html> element.
func (d *Document) DocumentElement() *Element {
	return d.documentElement
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return d.body
}

// Events returns the document-level event target.
func (d *Document) Events() *EventTarget {
	return d.events
}

// CreateElement creates a detached element owned by this document.
func (d *Document) CreateElement(tagName string) *Element {
	return &Element{
		doc:     d,
		tagName: tagName,
		events:  NewEventTarget(),
	}
}

// GetElementByID returns the first connected element with the given id.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	d.documentElement.Walk(func(e *Element) bool {
		if e.ID() == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// Dispatch dispatches ev through the document. A nil Target means the
// document itself is the target. Listeners run in capture order (window,
// document, ancestors), then at the target, then, for bubbling events, in
// reverse order.
func (d *Document) Dispatch(ev *Event) {
	path := []*EventTarget{d.window.events}
	if ev.Target != nil {
		path = append(path, d.events)
		for _, anc := range ev.Target.ancestors() {
			path = append(path, anc.events)
		}
	}
	target := d.events
	if ev.Target != nil {
		target = ev.Target.events
	}

	for _, et := range path {
		et.invoke(ev, PhaseCapturing)
	}
	target.invoke(ev, PhaseAtTarget)
	if !ev.Bubbles {
		return
	}
	for i := len(path) - 1; i >= 0; i-- {
		path[i].invoke(ev, PhaseBubbling)
	}
}
