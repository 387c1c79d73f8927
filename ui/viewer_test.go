package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/layout"
	"github.com/chrisuehlinger/vibepopper/loop"
	"github.com/chrisuehlinger/vibepopper/popper"
	"github.com/chrisuehlinger/vibepopper/render"
)

type stage struct {
	doc    *dom.Document
	viewer *Viewer
	ref    *dom.Element
	node   *dom.Element
	popper *popper.Popper
}

func newStage(t *testing.T, opts ...Option) *stage {
	t.Helper()
	doc := dom.NewDocument(800, 600)
	l := layout.New(doc)
	lp := loop.New()
	reg := popper.NewRegistry(doc, l, lp)

	add := func(id, style string) *dom.Element {
		el := doc.CreateElement("div")
		el.SetAttribute("id", id)
		el.SetAttribute("style", style)
		require.NoError(t, doc.Body().AppendChild(el))
		return el
	}
	s := &stage{doc: doc}
	s.ref = add("ref", "position: absolute; left: 100px; top: 500px; width: 100px; height: 20px")
	s.node = add("tip", "width: 200px; height: 150px")

	p, err := popper.New(reg, s.node, popper.WithReference(s.ref), popper.WithPosition(popper.Start), popper.WithSpacing(8))
	require.NoError(t, err)
	s.popper = p

	s.viewer = New(test.NewTempApp(t), "test", l, lp, opts...)
	s.viewer.resize(fyne.NewSize(800, 600))
	return s
}

func (s *stage) boxAt(t *testing.T, el *dom.Element) fyne.Position {
	t.Helper()
	b, ok := s.viewer.boxes[el]
	require.True(t, ok, "no box for %s", el.ID())
	require.True(t, b.rect.Visible())
	return b.rect.Position()
}

func TestViewer_DrawsBoxes(t *testing.T) {
	s := newStage(t)

	assert.Equal(t, fyne.NewPos(100, 500), s.boxAt(t, s.ref))
	assert.Equal(t, fyne.NewPos(100, 342), s.boxAt(t, s.node))
	assert.Equal(t, fyne.NewSize(200, 150), s.viewer.boxes[s.node].rect.Size())
	assert.Equal(t, "tip", s.viewer.boxes[s.node].label.Text)
}

func TestViewer_ResizeRepositions(t *testing.T) {
	s := newStage(t)

	s.viewer.resize(fyne.NewSize(800, 1000))

	assert.Equal(t, 1000.0, s.doc.Window().InnerHeight())
	state, _ := s.popper.State()
	assert.Equal(t, popper.Bottom, state.Placement)
	assert.Equal(t, fyne.NewPos(100, 528), s.boxAt(t, s.node))
}

func TestViewer_ScrollRepositions(t *testing.T) {
	s := newStage(t)

	s.viewer.scroll(0, -100)

	assert.Equal(t, 100.0, s.doc.Window().ScrollY())
	assert.Equal(t, fyne.NewPos(100, 400), s.boxAt(t, s.ref))
	assert.Equal(t, fyne.NewPos(100, 428), s.boxAt(t, s.node))

	s.viewer.scroll(0, 500)
	assert.Equal(t, 0.0, s.doc.Window().ScrollY(), "scroll is clamped at the top")
}

func TestViewer_HidesRemovedBoxes(t *testing.T) {
	var keys []fyne.KeyName
	s := newStage(t, WithKeyHandler(func(k fyne.KeyName) {
		keys = append(keys, k)
	}))

	s.viewer.typedKey(&fyne.KeyEvent{Name: fyne.KeyH})
	s.node.SetStyle(map[string]string{"display": "none"})
	s.viewer.Sync()

	assert.Equal(t, []fyne.KeyName{fyne.KeyH}, keys)
	assert.False(t, s.viewer.boxes[s.node].rect.Visible())
	assert.True(t, s.viewer.boxes[s.ref].rect.Visible())
}

func TestViewer_Roles(t *testing.T) {
	s := newStage(t, WithRoles(func() render.RoleFunc {
		return func(el *dom.Element) render.Role {
			if el.ID() == "ref" {
				return render.RoleReference
			}
			return render.RoleNone
		}
	}))

	assert.Contains(t, s.viewer.boxes, s.ref)
	assert.NotContains(t, s.viewer.boxes, s.node)
	assert.Equal(t, roleColors[render.RoleReference], s.viewer.boxes[s.ref].rect.StrokeColor)
}
