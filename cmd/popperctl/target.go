package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/geom"
	"github.com/chrisuehlinger/vibepopper/layout"
	"github.com/chrisuehlinger/vibepopper/network"
	"github.com/chrisuehlinger/vibepopper/popper"
	"github.com/chrisuehlinger/vibepopper/render"
	"github.com/chrisuehlinger/vibepopper/scenario"
	"github.com/chrisuehlinger/vibepopper/session"
)

// placed is one resolved popper, ready for printing.
type placed struct {
	Name      string
	Hidden    bool
	Placement popper.Placement
	Position  popper.Position
	Offset    geom.Point
	Node      geom.Rect
	Arrow     map[string]string
}

// target is a scenario or page after its poppers have settled.
type target struct {
	source string
	layout *layout.Layout
	roles  render.RoleFunc
	placed []placed
	// check reports expectation mismatches for scenarios and script
	// errors for pages.
	check error
}

func isScenario(src string) bool {
	return strings.EqualFold(filepath.Ext(src), ".toml")
}

func (a *app) open(ctx context.Context, src string) (*target, error) {
	if isScenario(src) {
		return a.openScenario(src)
	}
	return a.openPage(ctx, src)
}

func (a *app) openScenario(src string) (*target, error) {
	s, err := scenario.Load(src)
	if err != nil {
		return nil, err
	}
	res, err := scenario.Run(s,
		scenario.WithLogger(a.logger),
		scenario.WithDefaults(popper.OptionsFromDefaults(a.cfg.Popper)...))
	if err != nil {
		return nil, err
	}
	return &target{
		source: src,
		layout: layout.New(res.Fixture.Document),
		roles:  res.Fixture.Roles(),
		placed: []placed{{
			Name:      res.Name,
			Placement: res.Placement,
			Position:  res.Position,
			Offset:    res.Offset,
			Node:      res.Node,
			Arrow:     res.Arrow,
		}},
		check: res.Verify(s),
	}, nil
}

func (a *app) openPage(ctx context.Context, src string) (*target, error) {
	client, err := network.NewClient()
	if err != nil {
		return nil, err
	}
	sess, err := session.Open(ctx, network.NewLoader(client, network.WithLogger(a.logger)), src,
		session.WithLogger(a.logger),
		session.WithDefaults(popper.OptionsFromDefaults(a.cfg.Popper)...))
	if err != nil {
		return nil, err
	}
	errs := sess.RunScripts()
	sess.Settle(0)

	t := &target{
		source: src,
		layout: sess.Layout,
		roles:  sess.Roles(),
		check:  errors.Join(errs...),
	}
	for _, p := range sess.Registry.Poppers() {
		t.placed = append(t.placed, describe(p))
	}
	if len(t.placed) == 0 && t.check == nil {
		t.check = fmt.Errorf("%s: page created no poppers", src)
	}
	return t, nil
}

func describe(p *popper.Popper) placed {
	name := "#" + p.Node().ID()
	if name == "#" {
		name = p.ID().String()
	}
	state, ok := p.State()
	if !ok {
		return placed{Name: name, Hidden: true}
	}
	return placed{
		Name:      name,
		Placement: state.Placement,
		Position:  state.Position,
		Offset:    state.Offset,
		Node:      state.Node,
		Arrow:     arrowStyle(p.Config().Arrow),
	}
}

func arrowStyle(el *dom.Element) map[string]string {
	if el == nil {
		return nil
	}
	props := map[string]string{}
	for _, prop := range []string{"top", "right", "bottom", "left"} {
		if v := el.Style().GetPropertyValue(prop); v != "" {
			props[prop] = v
		}
	}
	return props
}
