// Package js exposes the document model and the positioning engine to page
// scripts. It uses the goja JavaScript engine (pure Go ES5.1+
// implementation).
package js

import (
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/loop"
	"github.com/chrisuehlinger/vibepopper/popper"
)

// Runtime wraps a goja runtime bound to one document and its popper
// registry. Like the document, it must only be used from the loop
// goroutine: animation-frame callbacks run inside loop.RunFrame.
type Runtime struct {
	vm       *goja.Runtime
	doc      *dom.Document
	registry *popper.Registry
	frames   loop.Scheduler
	logger   *zap.Logger
	start    time.Time

	elements map[*dom.Element]*goja.Object
	wrapped  map[*goja.Object]*dom.Element

	errors  []error
	onError func(error)
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger routes console output and script errors to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRuntime creates a runtime for the registry's document.
func NewRuntime(registry *popper.Registry, opts ...Option) *Runtime {
	r := &Runtime{
		vm:       goja.New(),
		doc:      registry.Document(),
		registry: registry,
		frames:   registry.Frames(),
		logger:   zap.NewNop(),
		start:    time.Now(),
		elements: make(map[*dom.Element]*goja.Object),
		wrapped:  make(map[*goja.Object]*dom.Element),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.setupConsole()
	r.setupWindow()
	r.setupDocument()
	r.setupPopper()
	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// SetOnError sets a callback for script errors, including errors thrown by
// animation-frame callbacks and popper hooks.
func (r *Runtime) SetOnError(handler func(error)) {
	r.onError = handler
}

// Execute runs code and returns its completion value.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.report(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.report(err)
	}
	return result, err
}

// ExecuteScript compiles and runs the code of a script element. src names
// the script in error positions.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script compilation panic in %s: %v", src, p)
			r.report(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.report(err)
		return err
	}
	if _, err = r.vm.RunProgram(program); err != nil {
		r.report(err)
	}
	return err
}

// Errors returns all errors reported so far.
func (r *Runtime) Errors() []error {
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.errors = r.errors[:0]
}

func (r *Runtime) report(err error) {
	r.errors = append(r.errors, err)
	r.logger.Warn("script error", zap.Error(err))
	if r.onError != nil {
		r.onError(err)
	}
}

// call invokes a script callback, reporting thrown exceptions instead of
// propagating them into Go code.
func (r *Runtime) call(fn goja.Callable, args ...goja.Value) {
	if _, err := fn(goja.Undefined(), args...); err != nil {
		r.report(err)
	}
}

func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	levels := map[string]func(string, ...zap.Field){
		"log":   r.logger.Info,
		"info":  r.logger.Info,
		"debug": r.logger.Debug,
		"warn":  r.logger.Warn,
		"error": r.logger.Error,
	}
	for name, logf := range levels {
		logf := logf
		console.Set(name, func(call goja.FunctionCall) goja.Value {
			logf(formatArgs(call.Arguments), zap.String("source", "console"))
			return goja.Undefined()
		})
	}
	r.vm.Set("console", console)
}

// setupWindow installs the window globals on the global object.
func (r *Runtime) setupWindow() {
	vm := r.vm
	global := vm.GlobalObject()
	win := r.doc.Window()

	global.Set("window", global)
	global.DefineAccessorProperty("innerWidth", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(win.InnerWidth())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	global.DefineAccessorProperty("innerHeight", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(win.InnerHeight())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	global.DefineAccessorProperty("scrollY", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(win.ScrollY())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	global.DefineAccessorProperty("scrollX", vm.ToValue(func(goja.FunctionCall) goja.Value {
		return vm.ToValue(win.ScrollX())
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	global.Set("scrollTo", func(call goja.FunctionCall) goja.Value {
		win.ScrollTo(call.Argument(0).ToFloat(), call.Argument(1).ToFloat())
		return goja.Undefined()
	})

	global.Set("requestAnimationFrame", func(call goja.FunctionCall) goja.Value {
		callback, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(vm.NewTypeError("requestAnimationFrame: callback is not a function"))
		}
		id := r.frames.RequestFrame(func() {
			ts := float64(time.Since(r.start)) / float64(time.Millisecond)
			r.call(callback, vm.ToValue(ts))
		})
		return vm.ToValue(int(id))
	})

	global.Set("cancelAnimationFrame", func(call goja.FunctionCall) goja.Value {
		r.frames.CancelFrame(loop.FrameID(call.Argument(0).ToInteger()))
		return goja.Undefined()
	})
}

// formatArgs formats console arguments separated by spaces.
func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if arg == nil || goja.IsUndefined(arg) {
			parts[i] = "undefined"
		} else if goja.IsNull(arg) {
			parts[i] = "null"
		} else {
			parts[i] = arg.String()
		}
	}
	return strings.Join(parts, " ")
}
