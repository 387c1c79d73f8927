// Package session ties a loaded page to a live document: layout, frame
// loop, popper registry and script runtime. A session is confined to the
// goroutine that drives its loop.
package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/html"
	"github.com/chrisuehlinger/vibepopper/js"
	"github.com/chrisuehlinger/vibepopper/layout"
	"github.com/chrisuehlinger/vibepopper/loop"
	"github.com/chrisuehlinger/vibepopper/network"
	"github.com/chrisuehlinger/vibepopper/popper"
	"github.com/chrisuehlinger/vibepopper/render"
)

// DefaultSettleFrames bounds Settle when the caller passes zero.
const DefaultSettleFrames = 16

// Session is a page running against a document.
type Session struct {
	Page     *html.Page
	Layout   *layout.Layout
	Loop     *loop.Loop
	Registry *popper.Registry
	Runtime  *js.Runtime

	logger *zap.Logger
}

type options struct {
	logger   *zap.Logger
	defaults []popper.Option
	loop     []loop.Option
}

// Option configures a Session.
type Option func(*options)

// WithLogger sets the logger shared by the registry and runtime.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDefaults sets registry-level popper defaults.
func WithDefaults(opts ...popper.Option) Option {
	return func(o *options) { o.defaults = append(o.defaults, opts...) }
}

// WithLoopOptions configures the frame loop.
func WithLoopOptions(opts ...loop.Option) Option {
	return func(o *options) { o.loop = append(o.loop, opts...) }
}

// New wires a parsed page into a session. Scripts are not run yet.
func New(page *html.Page, opts ...Option) *Session {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	doc := page.Document
	s := &Session{
		Page:   page,
		Layout: layout.New(doc),
		Loop:   loop.New(o.loop...),
		logger: o.logger,
	}
	s.Registry = popper.NewRegistry(doc, s.Layout, s.Loop,
		popper.WithLogger(o.logger), popper.WithDefaults(o.defaults...))
	s.Runtime = js.NewRuntime(s.Registry, js.WithLogger(o.logger))
	return s
}

// Open loads src through loader and wires it into a session.
func Open(ctx context.Context, loader *network.Loader, src string, opts ...Option) (*Session, error) {
	page, err := loader.LoadPage(ctx, src)
	if err != nil {
		return nil, err
	}
	return New(page, opts...), nil
}

// Document returns the session document.
func (s *Session) Document() *dom.Document {
	return s.Page.Document
}

// RunScripts runs the page scripts in document order. A failing script
// does not stop the ones after it; all errors are returned.
func (s *Session) RunScripts() []error {
	var errs []error
	for _, script := range s.Page.Scripts {
		if script.Code == "" {
			continue
		}
		if err := s.Runtime.ExecuteScript(script.Code, script.Name); err != nil {
			s.logger.Warn("script failed", zap.String("script", script.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", script.Name, err))
		}
	}
	return errs
}

// Settle runs frames until none are pending or limit frames have run, and
// returns how many ran. Scripts that request a frame from every frame
// never settle, hence the bound.
func (s *Session) Settle(limit int) int {
	if limit <= 0 {
		limit = DefaultSettleFrames
	}
	n := 0
	for n < limit && s.Loop.Pending() {
		s.Loop.RunFrame()
		n++
	}
	return n
}

// Roles colours elements by what they are to the live poppers. The
// mapping is taken when Roles is called.
func (s *Session) Roles() render.RoleFunc {
	roles := make(map[*dom.Element]render.Role)
	for _, p := range s.Registry.Poppers() {
		cfg := p.Config()
		if cfg.Container != nil {
			roles[cfg.Container] = render.RoleContainer
		}
		roles[cfg.Reference] = render.RoleReference
		roles[p.Node()] = render.RoleFloating
		if cfg.Arrow != nil {
			roles[cfg.Arrow] = render.RoleArrow
		}
	}
	return func(el *dom.Element) render.Role {
		if r, ok := roles[el]; ok {
			return r
		}
		return render.RoleBox
	}
}
