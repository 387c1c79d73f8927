package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/layout"
	"github.com/chrisuehlinger/vibepopper/loop"
	"github.com/chrisuehlinger/vibepopper/popper"
)

type env struct {
	doc  *dom.Document
	loop *loop.Loop
	reg  *popper.Registry
}

func newEnv() *env {
	doc := dom.NewDocument(800, 600)
	lp := loop.New()
	return &env{doc: doc, loop: lp, reg: popper.NewRegistry(doc, layout.New(doc), lp)}
}

func (e *env) element(t *testing.T, parent *dom.Element, style string) *dom.Element {
	t.Helper()
	el := e.doc.CreateElement("div")
	el.SetAttribute("style", style)
	if parent != nil {
		require.NoError(t, parent.AppendChild(el))
	}
	return el
}

func TestTooltip_ShowHide(t *testing.T) {
	e := newEnv()
	button := e.element(t, e.doc.Body(), "position: absolute; left: 100px; top: 300px; width: 80px; height: 30px")
	tip := e.element(t, nil, "width: 60px; height: 20px")

	var updates int
	host := NewTooltip(e.reg, button, tip, popper.WithAfterUpdate(func(_, _ *dom.Element, _ popper.State) {
		updates++
	}))
	require.NoError(t, host.Show())

	assert.True(t, host.Shown())
	assert.True(t, tip.IsConnected())
	assert.Equal(t, e.doc.Body(), tip.Parent())
	assert.Equal(t, 1, e.reg.Len())
	assert.Equal(t, 1, updates)

	e.loop.RunFrame()
	assert.Equal(t, 2, updates, "deferred update runs on the next frame")

	state, ok := host.Popper().State()
	require.True(t, ok)
	assert.Equal(t, popper.Top, state.Placement)
	assert.Equal(t, 274.0, state.Node.Y)

	host.Hide()
	assert.False(t, host.Shown())
	assert.False(t, tip.IsConnected())
	assert.Equal(t, 0, e.reg.Len())
	assert.False(t, button.HasAttribute("data-ui-placement"))
}

func TestHide_CancelsDeferredUpdate(t *testing.T) {
	e := newEnv()
	button := e.element(t, e.doc.Body(), "position: absolute; left: 100px; top: 300px; width: 80px; height: 30px")
	body := e.element(t, nil, "width: 120px; height: 60px")

	host := NewPopover(e.reg, button, body)
	require.NoError(t, host.Toggle())
	assert.True(t, e.loop.Pending())

	require.NoError(t, host.Toggle())
	assert.False(t, host.Shown())
	assert.False(t, e.loop.Pending())
}

func TestDropdown_StaysNextToToggle(t *testing.T) {
	e := newEnv()
	group := e.element(t, e.doc.Body(), "position: relative; left: 200px; top: 100px; width: 300px; height: 40px")
	toggle := e.element(t, group, "position: absolute; left: 0; top: 0; width: 90px; height: 30px")
	menu := e.element(t, nil, "width: 160px; height: 120px")

	host := NewDropdown(e.reg, toggle, menu)
	require.NoError(t, host.Show())
	e.loop.RunFrame()

	assert.Equal(t, group, menu.Parent())
	state, _ := host.Popper().State()
	assert.Equal(t, popper.Bottom, state.Placement)
	assert.Equal(t, popper.Start, state.Position)
	assert.Equal(t, 200.0, state.Node.X)
	assert.Equal(t, 132.0, state.Node.Y)

	host.Hide()
	assert.True(t, menu.IsConnected())
	assert.Equal(t, "none", menu.Style().GetPropertyValue("display"))

	require.NoError(t, host.Show())
	assert.Empty(t, menu.Style().GetPropertyValue("display"))
	assert.Equal(t, 1, e.reg.Len())
}

func TestShow_DetachedReference(t *testing.T) {
	e := newEnv()
	host := NewTooltip(e.reg, e.element(t, nil, ""), e.element(t, nil, ""))
	err := host.Show()
	assert.True(t, errors.Is(err, ErrDetachedReference))
	assert.False(t, host.Shown())
}
