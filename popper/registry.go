package popper

import (
	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/loop"
)

// Registry tracks the live poppers of one document. While at least one
// popper is registered it keeps exactly one window resize listener and one
// capturing document scroll listener; both are debounced to a single pass
// per animation frame.
//
// A Registry is confined to the loop goroutine, like the document it
// observes.
type Registry struct {
	doc      *dom.Document
	geometry Geometry
	frames   loop.Scheduler
	logger   *zap.Logger
	defaults []Option

	poppers  []*Popper
	attached bool
	resizeID dom.ListenerID
	scrollID dom.ListenerID

	resize *loop.Debouncer
	scroll *loop.Debouncer

	scrollAll     bool
	scrollTargets []*dom.Element
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger, shared by its poppers.
func WithLogger(logger *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDefaults sets options applied to every popper before its data
// attributes and explicit options.
func WithDefaults(opts ...Option) RegistryOption {
	return func(r *Registry) {
		r.defaults = append(r.defaults, opts...)
	}
}

// NewRegistry creates the registry for doc. geometry measures elements and
// frames schedules the debounced passes.
func NewRegistry(doc *dom.Document, geometry Geometry, frames loop.Scheduler, opts ...RegistryOption) *Registry {
	r := &Registry{
		doc:      doc,
		geometry: geometry,
		frames:   frames,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.resize = loop.NewDebouncer(frames, r.flushResize)
	r.scroll = loop.NewDebouncer(frames, r.flushScroll)
	return r
}

// Document returns the observed document.
func (r *Registry) Document() *dom.Document {
	return r.doc
}

// Geometry returns the measurement collaborator.
func (r *Registry) Geometry() Geometry {
	return r.geometry
}

// Frames returns the frame scheduler.
func (r *Registry) Frames() loop.Scheduler {
	return r.frames
}

// Len returns the number of live poppers.
func (r *Registry) Len() int {
	return len(r.poppers)
}

// Poppers returns the live poppers in registration order.
func (r *Registry) Poppers() []*Popper {
	return append([]*Popper(nil), r.poppers...)
}

// Has reports whether p is registered.
func (r *Registry) Has(p *Popper) bool {
	return r.indexOf(p) != -1
}

// Attached reports whether the shared listeners are installed.
func (r *Registry) Attached() bool {
	return r.attached
}

// UpdateAll updates every live popper immediately.
func (r *Registry) UpdateAll() {
	for _, p := range r.Poppers() {
		if r.Has(p) {
			p.Update()
		}
	}
}

func (r *Registry) indexOf(p *Popper) int {
	for i, q := range r.poppers {
		if q == p {
			return i
		}
	}
	return -1
}

func (r *Registry) add(p *Popper) {
	if r.Has(p) {
		return
	}
	r.poppers = append(r.poppers, p)
	r.logger.Debug("popper registered", zap.String("popper", p.id.String()), zap.Int("live", len(r.poppers)))
	if !r.attached {
		r.attach()
	}
}

func (r *Registry) remove(p *Popper) {
	i := r.indexOf(p)
	if i == -1 {
		return
	}
	r.poppers = append(r.poppers[:i], r.poppers[i+1:]...)
	r.logger.Debug("popper unregistered", zap.String("popper", p.id.String()), zap.Int("live", len(r.poppers)))
	if len(r.poppers) == 0 && r.attached {
		r.detach()
	}
}

func (r *Registry) attach() {
	r.resizeID = r.doc.Window().Events().AddEventListener(dom.EventResize, func(*dom.Event) {
		r.resize.Trigger()
	}, false)
	r.scrollID = r.doc.Events().AddEventListener(dom.EventScroll, func(ev *dom.Event) {
		if ev.Target == nil {
			r.scrollAll = true
		} else {
			r.scrollTargets = append(r.scrollTargets, ev.Target)
		}
		r.scroll.Trigger()
	}, true)
	r.attached = true
	r.logger.Debug("shared listeners attached")
}

func (r *Registry) detach() {
	r.doc.Window().Events().RemoveEventListener(dom.EventResize, r.resizeID)
	r.doc.Events().RemoveEventListener(dom.EventScroll, r.scrollID)
	r.resize.Cancel()
	r.scroll.Cancel()
	r.scrollAll = false
	r.scrollTargets = nil
	r.attached = false
	r.logger.Debug("shared listeners detached")
}

func (r *Registry) flushResize() {
	r.UpdateAll()
}

// flushScroll updates the poppers whose node or reference lies inside one
// of the elements scrolled during the batch. A document scroll affects all.
func (r *Registry) flushScroll() {
	all, targets := r.scrollAll, r.scrollTargets
	r.scrollAll, r.scrollTargets = false, nil

	for _, p := range r.Poppers() {
		if !r.Has(p) {
			continue
		}
		if all || affected(p, targets) {
			p.Update()
		}
	}
}

func affected(p *Popper, targets []*dom.Element) bool {
	for _, t := range targets {
		if t.Contains(p.node) || t.Contains(p.cfg.Reference) {
			return true
		}
	}
	return false
}
