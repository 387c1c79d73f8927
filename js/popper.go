package js

import (
	"github.com/dop251/goja"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/popper"
)

// setupPopper installs the Popper constructor:
//
//	var p = new Popper(node, reference, {placement: "top", spacing: 8});
//	p.update(); p.placement; p.dispose();
//
// Recognised options are placement, position, spacing, minContact, fixed,
// useGpu, noAttributes, container, arrow, beforeUpdate and afterUpdate.
func (r *Runtime) setupPopper() {
	vm := r.vm
	vm.Set("Popper", func(call goja.ConstructorCall) *goja.Object {
		node := r.unwrap(call.Argument(0))
		if node == nil {
			panic(vm.NewTypeError("Popper: node is not an element"))
		}
		opts := []popper.Option{popper.WithReference(r.unwrap(call.Argument(1)))}
		if o, ok := call.Argument(2).(*goja.Object); ok {
			opts = append(opts, r.popperOptions(o)...)
		}

		p, err := popper.New(r.registry, node, opts...)
		if err != nil {
			panic(vm.NewTypeError(err.Error()))
		}
		return r.popperObject(call.This, p)
	})
}

func (r *Runtime) popperOptions(o *goja.Object) []popper.Option {
	var opts []popper.Option
	get := func(name string) (goja.Value, bool) {
		v := o.Get(name)
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			return nil, false
		}
		return v, true
	}

	if v, ok := get("placement"); ok {
		opts = append(opts, popper.WithPlacement(popper.ParsePlacement(v.String())))
	}
	if v, ok := get("position"); ok {
		opts = append(opts, popper.WithPosition(popper.ParsePosition(v.String())))
	}
	if v, ok := get("spacing"); ok {
		opts = append(opts, popper.WithSpacing(v.ToFloat()))
	}
	// minContact: false and null explicitly unset it.
	if v := o.Get("minContact"); v != nil && !goja.IsUndefined(v) {
		if _, isBool := v.Export().(bool); isBool || goja.IsNull(v) {
			opts = append(opts, popper.WithMinContact(-1))
		} else {
			opts = append(opts, popper.WithMinContact(v.ToFloat()))
		}
	}
	if v, ok := get("fixed"); ok {
		opts = append(opts, popper.WithFixed(v.ToBoolean()))
	}
	if v, ok := get("useGpu"); ok {
		opts = append(opts, popper.WithGPU(v.ToBoolean()))
	}
	if v, ok := get("noAttributes"); ok && v.ToBoolean() {
		opts = append(opts, popper.WithoutAttributes())
	}
	if v, ok := get("container"); ok {
		opts = append(opts, popper.WithContainer(r.unwrap(v)))
	}
	if v, ok := get("arrow"); ok {
		opts = append(opts, popper.WithArrow(r.unwrap(v)))
	}
	if v, ok := get("beforeUpdate"); ok {
		if fn, ok := goja.AssertFunction(v); ok {
			opts = append(opts, popper.WithBeforeUpdate(func(node, reference *dom.Element) {
				r.call(fn, r.wrap(node), r.wrap(reference))
			}))
		}
	}
	if v, ok := get("afterUpdate"); ok {
		if fn, ok := goja.AssertFunction(v); ok {
			opts = append(opts, popper.WithAfterUpdate(func(node, reference *dom.Element, state popper.State) {
				r.call(fn, r.stateObject(state), r.wrap(node), r.wrap(reference))
			}))
		}
	}
	return opts
}

func (r *Runtime) popperObject(obj *goja.Object, p *popper.Popper) *goja.Object {
	vm := r.vm

	obj.Set("id", p.ID().String())
	obj.Set("node", r.wrap(p.Node()))
	obj.Set("reference", r.wrap(p.Config().Reference))

	obj.Set("update", func(goja.FunctionCall) goja.Value {
		p.Update()
		return goja.Undefined()
	})
	obj.Set("dispose", func(goja.FunctionCall) goja.Value {
		p.Dispose()
		return goja.Undefined()
	})

	obj.DefineAccessorProperty("placement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		state, ok := p.State()
		if !ok {
			return goja.Null()
		}
		return vm.ToValue(string(state.Placement))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("position", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(string(p.Config().Position))
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("state", vm.ToValue(func(goja.FunctionCall) goja.Value {
		state, ok := p.State()
		if !ok {
			return goja.Null()
		}
		return r.stateObject(state)
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	obj.DefineAccessorProperty("disposed", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(p.Disposed())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	return obj
}

func (r *Runtime) stateObject(state popper.State) *goja.Object {
	obj := r.vm.NewObject()
	obj.Set("placement", string(state.Placement))
	obj.Set("position", string(state.Position))
	obj.Set("x", state.Offset.X)
	obj.Set("y", state.Offset.Y)
	obj.Set("node", r.rectObject(state.Node))
	obj.Set("reference", r.rectObject(state.Reference))
	return obj
}
