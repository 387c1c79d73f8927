package scenario

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/geom"
	"github.com/chrisuehlinger/vibepopper/layout"
	"github.com/chrisuehlinger/vibepopper/loop"
	"github.com/chrisuehlinger/vibepopper/popper"
	"github.com/chrisuehlinger/vibepopper/render"
)

// Default viewport used when the scenario leaves it out.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

var ErrMismatch = errors.New("scenario: result does not match expectation")

// Fixture is a built scenario document.
type Fixture struct {
	Document  *dom.Document
	Reference *dom.Element
	Floating  *dom.Element
	Arrow     *dom.Element
	Container *dom.Element
	Scroller  *dom.Element
}

// Build creates the scenario document. Boxes are created in dependency
// order (scroller, container, reference, floating, arrow) and the scroll
// offsets are applied last.
func Build(s *Scenario) (*Fixture, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	w, h := s.Viewport.Width, s.Viewport.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	fx := &Fixture{Document: dom.NewDocument(w, h)}
	roles := map[string]*dom.Element{"body": fx.Document.Body()}

	steps := []struct {
		role       string
		box        *Box
		dst        **dom.Element
		parentRole string
	}{
		{"scroller", s.Scroller, &fx.Scroller, ""},
		{"container", s.Container, &fx.Container, ""},
		{"reference", s.Reference, &fx.Reference, ""},
		{"floating", s.Floating, &fx.Floating, ""},
		{"arrow", s.Arrow, &fx.Arrow, "floating"},
	}
	for _, step := range steps {
		if step.box == nil {
			continue
		}
		parentRole := step.box.Parent
		if parentRole == "" {
			parentRole = step.parentRole
		}
		if parentRole == "" {
			parentRole = "body"
		}
		parent, ok := roles[parentRole]
		if !ok {
			return nil, fmt.Errorf("%w %q for %s", ErrBadParent, parentRole, step.role)
		}

		el := fx.Document.CreateElement("div")
		el.SetID(step.role)
		el.SetAttribute("style", step.box.Style)
		for k, v := range step.box.Data {
			el.SetData(k, v)
		}
		if err := parent.AppendChild(el); err != nil {
			return nil, fmt.Errorf("build %s: %w", step.role, err)
		}
		roles[step.role] = el
		*step.dst = el
	}

	for _, step := range steps {
		if step.box != nil && (step.box.ScrollLeft != 0 || step.box.ScrollTop != 0) {
			(*step.dst).ScrollTo(step.box.ScrollLeft, step.box.ScrollTop)
		}
	}
	fx.Document.Window().ScrollTo(s.Viewport.ScrollX, s.Viewport.ScrollY)
	return fx, nil
}

// Roles colours the fixture boxes by scenario role.
func (fx *Fixture) Roles() render.RoleFunc {
	return func(el *dom.Element) render.Role {
		switch el {
		case nil:
			return render.RoleNone
		case fx.Reference:
			return render.RoleReference
		case fx.Floating:
			return render.RoleFloating
		case fx.Arrow:
			return render.RoleArrow
		case fx.Container, fx.Scroller:
			return render.RoleContainer
		}
		return render.RoleBox
	}
}

// Result is the outcome of running a scenario.
type Result struct {
	Name      string
	Placement popper.Placement
	Position  popper.Position
	Offset    geom.Point
	// Node and Reference are document-relative, or viewport-relative in
	// fixed mode.
	Node      geom.Rect
	Reference geom.Rect
	// Arrow holds the arrow's inline position, if the scenario has one.
	Arrow   map[string]string
	Fixture *Fixture
}

type runConfig struct {
	logger   *zap.Logger
	defaults []popper.Option
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithLogger sets the logger passed to the registry.
func WithLogger(logger *zap.Logger) RunOption {
	return func(c *runConfig) { c.logger = logger }
}

// WithDefaults sets registry-level popper defaults.
func WithDefaults(opts ...popper.Option) RunOption {
	return func(c *runConfig) { c.defaults = append(c.defaults, opts...) }
}

// Run builds the scenario, creates a popper for the floating element and
// runs one frame so deferred work settles.
func Run(s *Scenario, opts ...RunOption) (*Result, error) {
	cfg := runConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	fx, err := Build(s)
	if err != nil {
		return nil, err
	}

	lp := loop.New()
	reg := popper.NewRegistry(fx.Document, layout.New(fx.Document), lp,
		popper.WithLogger(cfg.logger.With(zap.String("scenario", s.Name))),
		popper.WithDefaults(cfg.defaults...))

	p, err := popper.New(reg, fx.Floating, s.popperOptions(fx)...)
	if err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", s.Name, err)
	}
	lp.RunFrame()

	state, ok := p.State()
	if !ok {
		return nil, fmt.Errorf("run scenario %s: floating element is hidden", s.Name)
	}
	res := &Result{
		Name:      s.Name,
		Placement: state.Placement,
		Position:  state.Position,
		Offset:    state.Offset,
		Node:      state.Node,
		Reference: state.Reference,
		Fixture:   fx,
	}
	if fx.Arrow != nil {
		res.Arrow = map[string]string{}
		for _, prop := range []string{"top", "right", "bottom", "left"} {
			if v := fx.Arrow.Style().GetPropertyValue(prop); v != "" {
				res.Arrow[prop] = v
			}
		}
	}
	return res, nil
}

func (s *Scenario) popperOptions(fx *Fixture) []popper.Option {
	o := s.Options
	opts := []popper.Option{popper.WithReference(fx.Reference)}
	if fx.Container != nil {
		opts = append(opts, popper.WithContainer(fx.Container))
	}
	if fx.Arrow != nil {
		opts = append(opts, popper.WithArrow(fx.Arrow))
	}
	if o.Placement != "" {
		opts = append(opts, popper.WithPlacement(popper.ParsePlacement(o.Placement)))
	}
	if o.Position != "" {
		opts = append(opts, popper.WithPosition(popper.ParsePosition(o.Position)))
	}
	if o.Spacing != nil {
		opts = append(opts, popper.WithSpacing(*o.Spacing))
	}
	if o.MinContact != nil {
		opts = append(opts, popper.WithMinContact(*o.MinContact))
	}
	if o.Fixed != nil {
		opts = append(opts, popper.WithFixed(*o.Fixed))
	}
	if o.UseGPU != nil {
		opts = append(opts, popper.WithGPU(*o.UseGPU))
	}
	if o.NoAttributes {
		opts = append(opts, popper.WithoutAttributes())
	}
	return opts
}

// Verify compares the result against the scenario's expectations.
func (r *Result) Verify(s *Scenario) error {
	e := s.Expect
	if e == nil {
		return nil
	}
	var problems []string
	if e.Placement != "" && popper.ParsePlacement(e.Placement) != r.Placement {
		problems = append(problems, fmt.Sprintf("placement %s, want %s", r.Placement, e.Placement))
	}
	if e.X != nil && *e.X != r.Node.X {
		problems = append(problems, fmt.Sprintf("x %v, want %v", r.Node.X, *e.X))
	}
	if e.Y != nil && *e.Y != r.Node.Y {
		problems = append(problems, fmt.Sprintf("y %v, want %v", r.Node.Y, *e.Y))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s: %v", ErrMismatch, r.Name, problems)
	}
	return nil
}
