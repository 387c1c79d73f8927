package render

import (
	"strings"
	"testing"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/layout"
)

func addBox(t *testing.T, doc *dom.Document, parent *dom.Element, id, style string) *dom.Element {
	t.Helper()
	el := doc.CreateElement("div")
	el.SetID(id)
	el.SetAttribute("style", style)
	if parent == nil {
		parent = doc.Body()
	}
	if err := parent.AppendChild(el); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	return el
}

func TestNewCanvas(t *testing.T) {
	c := NewCanvas(10, 4, 8, 16)
	if c.Width != 10 || c.Height != 4 {
		t.Errorf("Unexpected size %dx%d", c.Width, c.Height)
	}
	if len(c.Cells) != 40 {
		t.Errorf("Cells length = %d, want 40", len(c.Cells))
	}
	if c.String() != strings.Repeat("\n", 3) {
		t.Errorf("Expected a blank canvas, got %q", c.String())
	}

	// Out of bounds writes are ignored.
	c.SetCell(-1, 0, 'x', RoleBox)
	c.SetCell(10, 0, 'x', RoleBox)
	c.SetCell(0, 4, 'x', RoleBox)
}

func TestForViewport(t *testing.T) {
	doc := dom.NewDocument(805, 600)
	c := ForViewport(doc, 10, 20)
	if c.Width != 81 || c.Height != 30 {
		t.Errorf("Expected 81x30, got %dx%d", c.Width, c.Height)
	}
}

func TestPaint_Frame(t *testing.T) {
	doc := dom.NewDocument(100, 60)
	addBox(t, doc, nil, "ab", "position: absolute; left: 10px; top: 10px; width: 50px; height: 30px")

	c := ForViewport(doc, 10, 10)
	c.Paint(layout.New(doc), AllBoxes)

	want := strings.Join([]string{
		"",
		" ┌ab─┐",
		" │   │",
		" └───┘",
		"",
		"",
	}, "\n")
	if got := c.String(); got != want {
		t.Errorf("Unexpected canvas:\n%s\nwant:\n%s", got, want)
	}
	if c.At(1, 1).Role != RoleBox {
		t.Errorf("Expected corner role RoleBox, got %v", c.At(1, 1).Role)
	}
}

func TestPaint_RolesAndStacking(t *testing.T) {
	doc := dom.NewDocument(100, 50)
	ref := addBox(t, doc, nil, "r", "position: absolute; left: 0; top: 0; width: 40px; height: 30px")
	tip := addBox(t, doc, nil, "t", "position: absolute; left: 20px; top: 10px; width: 40px; height: 30px; z-index: 2")
	hidden := addBox(t, doc, nil, "h", "position: absolute; left: 0; top: 0; width: 100px; height: 50px; display: none")
	addBox(t, doc, hidden, "inner", "position: absolute; width: 10px; height: 10px")

	roles := func(el *dom.Element) Role {
		switch el {
		case ref:
			return RoleReference
		case tip:
			return RoleFloating
		}
		return RoleBox
	}
	c := ForViewport(doc, 10, 10)
	c.Paint(layout.New(doc), roles)

	if got := c.At(0, 0).Ch; got != '┏' {
		t.Errorf("Expected reference corner, got %q", got)
	}
	// The floating box has the higher z-index and covers the reference.
	if got := c.At(2, 2); got.Ch != '║' || got.Role != RoleFloating {
		t.Errorf("Expected floating edge on top, got %q (%v)", got.Ch, got.Role)
	}
	if strings.Contains(c.String(), "inner") {
		t.Error("Children of hidden elements must not be painted")
	}
}

func TestStyled_KeepsText(t *testing.T) {
	doc := dom.NewDocument(60, 30)
	addBox(t, doc, nil, "x", "position: absolute; left: 0; top: 0; width: 60px; height: 30px")
	c := ForViewport(doc, 10, 10)
	c.Paint(layout.New(doc), AllBoxes)

	styled := c.Styled(DefaultStyles())
	if !strings.Contains(styled, "x") || !strings.Contains(styled, "┌") {
		t.Errorf("Styled output lost its content: %q", styled)
	}
	if len(strings.Split(styled, "\n")) != 3 {
		t.Errorf("Expected 3 lines, got %q", styled)
	}
}
