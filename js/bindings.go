package js

import (
	"errors"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/vibepopper/css"
	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/geom"
)

// setupDocument binds the document global.
func (r *Runtime) setupDocument() {
	vm := r.vm
	doc := r.doc
	jsDoc := vm.NewObject()

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return r.wrap(doc.GetElementByID(call.Argument(0).String()))
	})
	jsDoc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		return r.wrap(doc.CreateElement(call.Argument(0).String()))
	})
	jsDoc.DefineAccessorProperty("body", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.wrap(doc.Body())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	jsDoc.DefineAccessorProperty("documentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.wrap(doc.DocumentElement())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	vm.Set("document", jsDoc)
}

// wrap returns the script object for el, creating it on first use so the
// same element always maps to the same object.
func (r *Runtime) wrap(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	if obj, ok := r.elements[el]; ok {
		return obj
	}

	vm := r.vm
	obj := vm.NewObject()
	r.elements[el] = obj
	r.wrapped[obj] = el

	obj.DefineAccessorProperty("tagName", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.TagName())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("id", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.ID())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		el.SetID(call.Argument(0).String())
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("parentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return r.wrap(el.Parent())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("isConnected", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.IsConnected())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("scrollTop", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.ScrollTop())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		el.ScrollTo(el.ScrollLeft(), call.Argument(0).ToFloat())
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.DefineAccessorProperty("scrollLeft", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(el.ScrollLeft())
	}), vm.ToValue(func(call goja.FunctionCall) goja.Value {
		el.ScrollTo(call.Argument(0).ToFloat(), el.ScrollTop())
		return goja.Undefined()
	}), goja.FLAG_FALSE, goja.FLAG_TRUE)

	obj.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		name := call.Argument(0).String()
		if !el.HasAttribute(name) {
			return goja.Null()
		}
		return vm.ToValue(el.GetAttribute(name))
	})
	obj.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		el.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	})
	obj.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})
	obj.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute(call.Argument(0).String()))
	})

	obj.Set("appendChild", func(call goja.FunctionCall) goja.Value {
		child := r.unwrap(call.Argument(0))
		if child == nil {
			panic(vm.NewTypeError("appendChild: argument is not an element"))
		}
		if err := el.AppendChild(child); err != nil {
			r.throwDOMError(err)
		}
		return call.Argument(0)
	})
	obj.Set("remove", func(goja.FunctionCall) goja.Value {
		el.Remove()
		return goja.Undefined()
	})
	obj.Set("contains", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.Contains(r.unwrap(call.Argument(0))))
	})
	obj.Set("scrollTo", func(call goja.FunctionCall) goja.Value {
		el.ScrollTo(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		return goja.Undefined()
	})
	obj.Set("getBoundingClientRect", func(goja.FunctionCall) goja.Value {
		return r.rectObject(r.registry.Geometry().Rect(el, false))
	})

	obj.Set("style", vm.NewDynamicObject(&styleObject{vm: vm, el: el}))
	obj.Set("dataset", vm.NewDynamicObject(&datasetObject{vm: vm, el: el}))

	return obj
}

// unwrap returns the element behind a script value, or nil.
func (r *Runtime) unwrap(v goja.Value) *dom.Element {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	return r.wrapped[obj]
}

func (r *Runtime) rectObject(rect geom.Rect) *goja.Object {
	obj := r.vm.NewObject()
	obj.Set("x", rect.X)
	obj.Set("y", rect.Y)
	obj.Set("width", rect.Width)
	obj.Set("height", rect.Height)
	obj.Set("top", rect.Top())
	obj.Set("right", rect.Right())
	obj.Set("bottom", rect.Bottom())
	obj.Set("left", rect.Left())
	return obj
}

// throwDOMError throws err as an Error whose name is the DOMException name.
func (r *Runtime) throwDOMError(err error) {
	var domErr *dom.DOMError
	if !errors.As(err, &domErr) {
		panic(r.vm.NewGoError(err))
	}
	exc := r.vm.NewObject()
	exc.Set("name", domErr.Name)
	exc.Set("message", domErr.Message)
	panic(r.vm.ToValue(exc))
}

// styleObject exposes an element's inline style with camelCase property
// access (el.style.marginLeft) plus the declaration methods.
type styleObject struct {
	vm *goja.Runtime
	el *dom.Element
}

func (s *styleObject) Get(key string) goja.Value {
	sd := s.el.Style()
	switch key {
	case "cssText":
		return s.vm.ToValue(sd.CSSText())
	case "length":
		return s.vm.ToValue(sd.Length())
	case "getPropertyValue":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return s.vm.ToValue(sd.GetPropertyValue(call.Argument(0).String()))
		})
	case "setProperty":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			sd.SetProperty(call.Argument(0).String(), call.Argument(1).String())
			return goja.Undefined()
		})
	case "removeProperty":
		return s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return s.vm.ToValue(sd.RemoveProperty(call.Argument(0).String()))
		})
	}
	return s.vm.ToValue(sd.GetPropertyValue(css.NormalizePropertyName(key)))
}

func (s *styleObject) Set(key string, val goja.Value) bool {
	sd := s.el.Style()
	if key == "cssText" {
		sd.SetCSSText(val.String())
		return true
	}
	v := ""
	if val != nil && !goja.IsNull(val) && !goja.IsUndefined(val) {
		v = val.String()
	}
	sd.SetProperty(css.NormalizePropertyName(key), v)
	return true
}

func (s *styleObject) Has(key string) bool {
	return s.el.Style().GetPropertyValue(css.NormalizePropertyName(key)) != ""
}

func (s *styleObject) Delete(key string) bool {
	s.el.Style().RemoveProperty(css.NormalizePropertyName(key))
	return true
}

func (s *styleObject) Keys() []string {
	var keys []string
	for _, d := range css.ParseDeclarations(s.el.Style().CSSText()) {
		keys = append(keys, css.CamelCase(d.Property))
	}
	return keys
}

// datasetObject maps camelCase keys onto data-* attributes.
type datasetObject struct {
	vm *goja.Runtime
	el *dom.Element
}

func (d *datasetObject) Get(key string) goja.Value {
	v, ok := d.el.Data(key)
	if !ok {
		return nil
	}
	return d.vm.ToValue(v)
}

func (d *datasetObject) Set(key string, val goja.Value) bool {
	d.el.SetData(key, val.String())
	return true
}

func (d *datasetObject) Has(key string) bool {
	_, ok := d.el.Data(key)
	return ok
}

func (d *datasetObject) Delete(key string) bool {
	d.el.RemoveData(key)
	return true
}

func (d *datasetObject) Keys() []string {
	keys := make([]string, 0)
	for k := range d.el.Dataset() {
		keys = append(keys, k)
	}
	return keys
}
