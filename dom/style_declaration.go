package dom

import (
	"strings"

	"github.com/chrisuehlinger/vibepopper/css"
)

// CSSStyleDeclaration represents an element's inline style. Changes are
// written back to the element's style attribute.
type CSSStyleDeclaration struct {
	element *Element

	// Parsed declarations (property name -> declaration)
	declarations map[string]*styleProperty

	// Order in which properties were set (for cssText serialization)
	propertyOrder []string
}

// styleProperty holds a single CSS property's value and priority.
type styleProperty struct {
	value     string
	important bool
}

// Style returns the element's inline style declaration.
func (e *Element) Style() *CSSStyleDeclaration {
	if e.style == nil {
		e.style = &CSSStyleDeclaration{element: e}
		e.style.refresh()
	}
	return e.style
}

// SetStyle sets several inline properties at once. An empty value removes
// the property.
func (e *Element) SetStyle(props map[string]string) {
	sd := e.Style()
	for prop, value := range props {
		sd.setProperty(prop, value, false)
	}
	sd.syncToAttribute()
}

// CSSText returns the textual representation of the declaration block.
func (sd *CSSStyleDeclaration) CSSText() string {
	var parts []string
	for _, prop := range sd.propertyOrder {
		sp := sd.declarations[prop]
		part := prop + ": " + sp.value
		if sp.important {
			part += " !important"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}

// SetCSSText replaces all properties with those parsed from cssText.
func (sd *CSSStyleDeclaration) SetCSSText(cssText string) {
	sd.load(cssText)
	sd.syncToAttribute()
}

// Length returns the number of properties set.
func (sd *CSSStyleDeclaration) Length() int {
	return len(sd.propertyOrder)
}

// GetPropertyValue returns the value of a CSS property.
func (sd *CSSStyleDeclaration) GetPropertyValue(property string) string {
	if sp, ok := sd.declarations[css.NormalizePropertyName(property)]; ok {
		return sp.value
	}
	return ""
}

// SetProperty sets a CSS property. An empty value removes it.
func (sd *CSSStyleDeclaration) SetProperty(property, value string) {
	sd.setProperty(property, value, false)
	sd.syncToAttribute()
}

// RemoveProperty removes a CSS property and returns its old value.
func (sd *CSSStyleDeclaration) RemoveProperty(property string) string {
	old := sd.GetPropertyValue(property)
	sd.setProperty(property, "", false)
	sd.syncToAttribute()
	return old
}

func (sd *CSSStyleDeclaration) setProperty(property, value string, important bool) {
	property = css.NormalizePropertyName(property)
	if property == "" {
		return
	}

	if value == "" {
		if _, ok := sd.declarations[property]; !ok {
			return
		}
		delete(sd.declarations, property)
		for i, p := range sd.propertyOrder {
			if p == property {
				sd.propertyOrder = append(sd.propertyOrder[:i], sd.propertyOrder[i+1:]...)
				break
			}
		}
		return
	}

	if _, exists := sd.declarations[property]; !exists {
		sd.propertyOrder = append(sd.propertyOrder, property)
	}
	sd.declarations[property] = &styleProperty{value: value, important: important}
}

func (sd *CSSStyleDeclaration) load(cssText string) {
	sd.declarations = make(map[string]*styleProperty)
	sd.propertyOrder = nil
	for _, d := range css.ParseDeclarations(cssText) {
		sd.setProperty(d.Property, d.Value, d.Important)
	}
}

// refresh reloads declarations from the element's style attribute.
func (sd *CSSStyleDeclaration) refresh() {
	sd.load(sd.element.GetAttribute("style"))
}

// syncToAttribute writes the declarations back without re-parsing.
func (sd *CSSStyleDeclaration) syncToAttribute() {
	text := sd.CSSText()
	if text == "" {
		sd.element.removeAttributeValue("style")
		return
	}
	sd.element.setAttributeValue("style", text)
}

// initialValues are the computed values of properties with no inline
// declaration.
var initialValues = map[string]string{
	"position":   "static",
	"display":    "block",
	"visibility": "visible",
	"overflow":   "visible",
	"transform":  "none",
	"left":       "auto",
	"top":        "auto",
	"right":      "auto",
	"bottom":     "auto",
	"width":      "auto",
	"height":     "auto",
	"margin":     "0px",
}

// ComputedStyle returns the effective value of a property: the inline
// declaration, then its shorthand, then the initial value.
func (e *Element) ComputedStyle(property string) string {
	property = css.NormalizePropertyName(property)
	sd := e.Style()
	if v := sd.GetPropertyValue(property); v != "" {
		return v
	}

	switch property {
	case "margin-top", "margin-right", "margin-bottom", "margin-left":
		top, right, bottom, left := css.ExpandBox(sd.GetPropertyValue("margin"))
		v := map[string]string{
			"margin-top":    top,
			"margin-right":  right,
			"margin-bottom": bottom,
			"margin-left":   left,
		}[property]
		if v != "" {
			return v
		}
		return initialValues["margin"]
	case "overflow-x", "overflow-y":
		if v := sd.GetPropertyValue("overflow"); v != "" {
			return v
		}
		return initialValues["overflow"]
	}
	return initialValues[property]
}
