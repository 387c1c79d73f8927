package dom

import (
	"strings"

	"github.com/chrisuehlinger/vibepopper/css"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Attributes returns a copy of the element's attributes in insertion order.
func (e *Element) Attributes() []Attr {
	return append([]Attr(nil), e.attrs...)
}

// GetAttribute returns the attribute value, or "" if absent.
func (e *Element) GetAttribute(name string) string {
	v, _ := e.lookupAttribute(name)
	return v
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.lookupAttribute(name)
	return ok
}

func (e *Element) lookupAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttribute sets an attribute. Setting "style" re-parses the inline
// style declaration.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	e.setAttributeValue(name, value)
	if name == "style" && e.style != nil {
		e.style.refresh()
	}
}

func (e *Element) setAttributeValue(name, value string) {
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	e.removeAttributeValue(name)
	if name == "style" && e.style != nil {
		e.style.refresh()
	}
}

func (e *Element) removeAttributeValue(name string) {
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// datasetAttribute maps a camelCase dataset key to its attribute name:
// "uiPlacement" -> "data-ui-placement".
func datasetAttribute(key string) string {
	return "data-" + css.NormalizePropertyName(key)
}

// Data returns a dataset value by camelCase key.
func (e *Element) Data(key string) (string, bool) {
	return e.lookupAttribute(datasetAttribute(key))
}

// SetData sets a dataset value by camelCase key.
func (e *Element) SetData(key, value string) {
	e.SetAttribute(datasetAttribute(key), value)
}

// RemoveData removes a dataset value by camelCase key.
func (e *Element) RemoveData(key string) {
	e.RemoveAttribute(datasetAttribute(key))
}

// Dataset returns all data-* attributes keyed by camelCase name.
func (e *Element) Dataset() map[string]string {
	out := make(map[string]string)
	for _, a := range e.attrs {
		if strings.HasPrefix(a.Name, "data-") {
			out[css.CamelCase(strings.TrimPrefix(a.Name, "data-"))] = a.Value
		}
	}
	return out
}
