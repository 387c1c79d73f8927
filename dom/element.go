package dom

import (
	"strings"
)

// Element is a node in the document tree.
type Element struct {
	doc      *Document
	tagName  string
	attrs    []Attr
	parent   *Element
	children []*Element
	style    *CSSStyleDeclaration
	events   *EventTarget

	scrollLeft float64
	scrollTop  float64
}

// OwnerDocument returns the document that created this element.
func (e *Element) OwnerDocument() *Document {
	return e.doc
}

// TagName returns the element's tag name in lowercase.
func (e *Element) TagName() string {
	return strings.ToLower(e.tagName)
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.GetAttribute("id")
}

// SetID sets the id attribute.
func (e *Element) SetID(id string) {
	e.SetAttribute("id", id)
}

// Parent returns the parent element, or nil for a detached or root element.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the element's children.
func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// Events returns the element's event target.
func (e *Element) Events() *EventTarget {
	return e.events
}

// AppendChild appends child to e, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) error {
	if child == nil {
		return ErrNotFound("child is nil")
	}
	if child.doc != e.doc {
		return ErrWrongDocument("child belongs to another document")
	}
	if child.Contains(e) {
		return ErrHierarchyRequest("the new child is an ancestor of the parent")
	}
	e.appendChild(child)
	return nil
}

func (e *Element) appendChild(child *Element) {
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
}

// RemoveChild removes child from e.
func (e *Element) RemoveChild(child *Element) error {
	if child == nil || child.parent != e {
		return ErrNotFound("the node to be removed is not a child of this node")
	}
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	child.parent = nil
	return nil
}

// Remove detaches e from its parent, if any.
func (e *Element) Remove() {
	if e.parent != nil {
		_ = e.parent.RemoveChild(e)
	}
}

// IsConnected reports whether e is attached to its document's tree.
func (e *Element) IsConnected() bool {
	root := e
	for root.parent != nil {
		root = root.parent
	}
	return e.doc != nil && root == e.doc.documentElement
}

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Closest returns the nearest inclusive ancestor matching pred, stopping
// before boundary if boundary is non-nil.
func (e *Element) Closest(pred func(*Element) bool, boundary *Element) *Element {
	for n := e; n != nil && n != boundary; n = n.parent {
		if pred(n) {
			return n
		}
	}
	return nil
}

// ancestors returns the element's ancestors from the root down to its parent.
func (e *Element) ancestors() []*Element {
	var out []*Element
	for n := e.parent; n != nil; n = n.parent {
		out = append(out, n)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Walk visits e and its descendants in document order. Returning false
// from fn stops the walk.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// ScrollLeft returns the horizontal scroll offset of a scroll container.
func (e *Element) ScrollLeft() float64 {
	return e.scrollLeft
}

// ScrollTop returns the vertical scroll offset of a scroll container.
func (e *Element) ScrollTop() float64 {
	return e.scrollTop
}

// ScrollTo sets the element's scroll offsets and fires a non-bubbling
// scroll event at it when connected.
func (e *Element) ScrollTo(x, y float64) {
	e.scrollLeft = x
	e.scrollTop = y
	if e.IsConnected() {
		e.doc.Dispatch(&Event{Type: EventScroll, Target: e})
	}
}
