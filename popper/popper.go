// Package popper positions a floating element (tooltip, popover, dropdown
// menu) next to a reference element, flipping and clamping it so it stays
// inside the viewport, an optional scroll parent and an optional container.
//
// A Popper is bound to one floating node. It registers with a Registry,
// which owns the shared window resize and document scroll listeners and
// re-runs Update on every live instance once per animation frame.
package popper

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/css"
	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/geom"
)

// MarkerKey is the dataset key of the resolved placement marker
// (data-ui-placement).
const MarkerKey = "uiPlacement"

var (
	ErrNilRegistry  = errors.New("popper: registry is nil")
	ErrNilNode      = errors.New("popper: floating node is nil")
	ErrNilReference = errors.New("popper: reference node is nil")
)

// Geometry is the measurement collaborator. layout.Layout implements it.
type Geometry interface {
	Rect(el *dom.Element, offset bool) geom.Rect
	WindowRect(offset bool) geom.Rect
	IsVisible(el *dom.Element) bool
	IsFixed(el *dom.Element) bool
	OffsetParent(el *dom.Element) *dom.Element
	ScrollParent(el *dom.Element) *dom.Element
}

// State is the outcome of the most recent successful update.
type State struct {
	Placement Placement
	Position  Position
	// Offset is the translation (or margin) written to the node.
	Offset geom.Point
	// Node and Reference are the final boxes in the measurement frame.
	Node      geom.Rect
	Reference geom.Rect
}

type marker struct {
	value   string
	present bool
}

func captureMarker(el *dom.Element) marker {
	v, ok := el.Data(MarkerKey)
	return marker{value: v, present: ok}
}

func (m marker) restore(el *dom.Element) {
	if m.present {
		el.SetData(MarkerKey, m.value)
	} else {
		el.RemoveData(MarkerKey)
	}
}

// Popper positions one floating node.
type Popper struct {
	id       uuid.UUID
	registry *Registry
	node     *dom.Element
	cfg      Config
	viewport bool
	logger   *zap.Logger

	nodeMarker marker
	refMarker  marker

	state    State
	updated  bool
	disposed bool
}

// New binds a Popper to node, registers it and performs the initial
// update synchronously. Options take precedence over the reference's data
// attributes, which take precedence over the registry defaults.
func New(registry *Registry, node *dom.Element, opts ...Option) (*Popper, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	if node == nil {
		return nil, ErrNilNode
	}
	cfg := resolveConfig(registry.defaults, opts)
	if cfg.Reference == nil {
		return nil, ErrNilReference
	}

	p := &Popper{
		id:         uuid.New(),
		registry:   registry,
		node:       node,
		cfg:        cfg,
		viewport:   cfg.Fixed || registry.geometry.IsFixed(cfg.Reference),
		nodeMarker: captureMarker(node),
		refMarker:  captureMarker(cfg.Reference),
	}
	p.logger = registry.logger.With(zap.String("popper", p.id.String()))

	position := "absolute"
	if p.viewport {
		position = "fixed"
	}
	node.SetStyle(map[string]string{
		"position": position,
		"top":      "0",
		"left":     "0",
		"margin":   "0",
	})

	registry.add(p)
	p.Update()
	return p, nil
}

// ID returns the instance identifier.
func (p *Popper) ID() uuid.UUID {
	return p.id
}

// Node returns the floating node.
func (p *Popper) Node() *dom.Element {
	return p.node
}

// Config returns the resolved configuration.
func (p *Popper) Config() Config {
	return p.cfg
}

// State returns the result of the last successful update and whether one
// has happened.
func (p *Popper) State() (State, bool) {
	return p.state, p.updated
}

// Disposed reports whether Dispose has been called.
func (p *Popper) Disposed() bool {
	return p.disposed
}

// Update recomputes the node position. It does nothing if the popper is
// disposed or the node is detached or hidden.
func (p *Popper) Update() {
	if p.disposed {
		return
	}
	g := p.registry.geometry
	if !p.node.IsConnected() || !g.IsVisible(p.node) {
		p.logger.Debug("skipping update of hidden node")
		return
	}

	node, ref := p.node, p.cfg.Reference

	node.SetStyle(map[string]string{
		"transform":   "",
		"margin-left": "",
		"margin-top":  "",
	})

	if p.cfg.BeforeUpdate != nil {
		p.cfg.BeforeUpdate(node, ref)
	}

	offsetMode := !p.viewport
	nodeBox := g.Rect(node, offsetMode)
	refBox := g.Rect(ref, offsetMode)
	minBox := g.WindowRect(offsetMode).Bounds()

	var offsetParent, scrollParent *dom.Element
	if !p.viewport {
		offsetParent = g.OffsetParent(node)
		scrollParent = g.ScrollParent(node)
	}
	if scrollParent != nil {
		minBox = minBox.Tighten(g.Rect(scrollParent, offsetMode))
	}
	if p.cfg.Container != nil {
		minBox = minBox.Tighten(g.Rect(p.cfg.Container, offsetMode))
	}

	placement := p.cfg.Placement
	if !p.cfg.Fixed || placement == Auto {
		placement = ResolvePlacement(nodeBox, refBox, minBox, placement, p.cfg.Spacing+placementPadding)
	}
	position := p.cfg.Position

	node.SetData(MarkerKey, string(placement))
	if !p.cfg.NoAttributes {
		ref.SetData(MarkerKey, string(placement))
	}

	offset := refBox.Origin().Round()
	var frame geom.Point
	if offsetParent != nil {
		frame = g.Rect(offsetParent, offsetMode).Origin().Round()
		offset = offset.Sub(frame)
	}

	offset = offset.Add(PlacementOffset(nodeBox, refBox, placement, position, p.cfg.Spacing))

	margin := geom.Point{
		X: css.LengthOr(node.ComputedStyle("margin-left"), 0),
		Y: css.LengthOr(node.ComputedStyle("margin-top"), 0),
	}
	offset = offset.Sub(margin)
	frame = frame.Add(margin)

	offset = Constrain(offset, frame, nodeBox, refBox, minBox, placement, p.cfg.MinContact)
	final := offset.Add(frame)
	finalBox := geom.NewRect(final.X, final.Y, nodeBox.Width, nodeBox.Height)

	// Children of a scrolling containing block move with its scroll
	// offset; compensate so the node lands where it was computed.
	if scrollParent != nil && scrollParent == offsetParent {
		offset.X += scrollParent.ScrollLeft()
		offset.Y += scrollParent.ScrollTop()
	}

	if p.cfg.UseGPU {
		node.SetStyle(map[string]string{"transform": css.Translate3d(offset.X, offset.Y)})
	} else {
		node.SetStyle(map[string]string{
			"margin-left": css.Px(offset.X),
			"margin-top":  css.Px(offset.Y),
		})
	}

	if p.cfg.Arrow != nil {
		arrowBox := g.Rect(p.cfg.Arrow, offsetMode)
		p.cfg.Arrow.SetStyle(ArrowOffset(arrowBox, finalBox, refBox, placement, position).Style())
	}

	p.state = State{
		Placement: placement,
		Position:  position,
		Offset:    offset,
		Node:      finalBox,
		Reference: refBox,
	}
	p.updated = true

	if p.cfg.AfterUpdate != nil {
		p.cfg.AfterUpdate(node, ref, p.state)
	}
}

// Dispose restores the placement markers found at construction and
// unregisters the popper. Calling it again is a no-op.
func (p *Popper) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.nodeMarker.restore(p.node)
	p.refMarker.restore(p.cfg.Reference)
	p.registry.remove(p)
}
