// Package render paints a document's boxes onto a character grid so
// positioning results can be inspected in a terminal.
package render

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chrisuehlinger/vibepopper/css"
	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/layout"
)

// Role classifies a painted box.
type Role int

const (
	RoleNone Role = iota
	RoleBox
	RoleContainer
	RoleReference
	RoleFloating
	RoleArrow
)

// Cell is one character of the canvas.
type Cell struct {
	Ch   rune
	Role Role
}

// Canvas represents the rendering surface. Each cell covers CellWidth by
// CellHeight pixels of the viewport.
type Canvas struct {
	Cells      []Cell
	Width      int
	Height     int
	CellWidth  float64
	CellHeight float64
}

// NewCanvas creates a blank canvas of cols by rows cells.
func NewCanvas(cols, rows int, cellWidth, cellHeight float64) *Canvas {
	cells := make([]Cell, cols*rows)
	for i := range cells {
		cells[i] = Cell{Ch: ' '}
	}
	return &Canvas{Cells: cells, Width: cols, Height: rows, CellWidth: cellWidth, CellHeight: cellHeight}
}

// ForViewport creates a canvas covering the document's viewport.
func ForViewport(doc *dom.Document, cellWidth, cellHeight float64) *Canvas {
	win := doc.Window()
	cols := int(math.Ceil(win.InnerWidth() / cellWidth))
	rows := int(math.Ceil(win.InnerHeight() / cellHeight))
	return NewCanvas(cols, rows, cellWidth, cellHeight)
}

// SetCell sets a cell, ignoring coordinates outside the canvas.
func (c *Canvas) SetCell(x, y int, ch rune, role Role) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Cells[y*c.Width+x] = Cell{Ch: ch, Role: role}
}

// At returns the cell at (x, y).
func (c *Canvas) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return Cell{Ch: ' '}
	}
	return c.Cells[y*c.Width+x]
}

// RoleFunc decides how an element is painted. RoleNone skips the element
// but still paints its children.
type RoleFunc func(el *dom.Element) Role

// AllBoxes paints every element with a non-empty box.
func AllBoxes(*dom.Element) Role {
	return RoleBox
}

// Paint renders the visible elements under the body, in viewport
// coordinates, lowest z-index first and in tree order otherwise.
func (c *Canvas) Paint(l *layout.Layout, roles RoleFunc) {
	for _, cmd := range c.buildDisplayList(l, roles) {
		cmd.Execute(c)
	}
}

// DisplayCommand represents a single painting operation.
type DisplayCommand interface {
	Execute(c *Canvas)
}

// FrameCommand draws a box outline with a label in its top edge.
type FrameCommand struct {
	X0, Y0, X1, Y1 int
	Role           Role
	Label          string
}

// Execute paints the outline.
func (cmd *FrameCommand) Execute(c *Canvas) {
	g := glyphsFor(cmd.Role)
	if cmd.X0 == cmd.X1 || cmd.Y0 == cmd.Y1 {
		for y := cmd.Y0; y <= cmd.Y1; y++ {
			for x := cmd.X0; x <= cmd.X1; x++ {
				c.SetCell(x, y, g.fill, cmd.Role)
			}
		}
		return
	}
	for x := cmd.X0 + 1; x < cmd.X1; x++ {
		c.SetCell(x, cmd.Y0, g.horizontal, cmd.Role)
		c.SetCell(x, cmd.Y1, g.horizontal, cmd.Role)
	}
	for y := cmd.Y0 + 1; y < cmd.Y1; y++ {
		c.SetCell(cmd.X0, y, g.vertical, cmd.Role)
		c.SetCell(cmd.X1, y, g.vertical, cmd.Role)
		for x := cmd.X0 + 1; x < cmd.X1; x++ {
			c.SetCell(x, y, ' ', RoleNone)
		}
	}
	c.SetCell(cmd.X0, cmd.Y0, g.corners[0], cmd.Role)
	c.SetCell(cmd.X1, cmd.Y0, g.corners[1], cmd.Role)
	c.SetCell(cmd.X0, cmd.Y1, g.corners[2], cmd.Role)
	c.SetCell(cmd.X1, cmd.Y1, g.corners[3], cmd.Role)

	label := []rune(cmd.Label)
	if room := cmd.X1 - cmd.X0 - 1; len(label) > room {
		label = label[:max(room, 0)]
	}
	for i, r := range label {
		c.SetCell(cmd.X0+1+i, cmd.Y0, r, cmd.Role)
	}
}

type glyphs struct {
	horizontal, vertical, fill rune
	corners                    [4]rune
}

func glyphsFor(role Role) glyphs {
	switch role {
	case RoleFloating:
		return glyphs{'═', '║', '█', [4]rune{'╔', '╗', '╚', '╝'}}
	case RoleReference:
		return glyphs{'━', '┃', '▓', [4]rune{'┏', '┓', '┗', '┛'}}
	case RoleArrow:
		return glyphs{'*', '*', '*', [4]rune{'*', '*', '*', '*'}}
	case RoleContainer:
		return glyphs{'┄', '┆', '░', [4]rune{'┌', '┐', '└', '┘'}}
	}
	return glyphs{'─', '│', '▒', [4]rune{'┌', '┐', '└', '┘'}}
}

// stackingEntry is an element with its paint order key.
type stackingEntry struct {
	el     *dom.Element
	zIndex float64
	order  int
}

func (c *Canvas) buildDisplayList(l *layout.Layout, roles RoleFunc) []DisplayCommand {
	var entries []stackingEntry
	var collect func(el *dom.Element)
	collect = func(el *dom.Element) {
		// Hidden subtrees are skipped entirely.
		if !l.IsVisible(el) {
			return
		}
		entries = append(entries, stackingEntry{
			el:     el,
			zIndex: css.LengthOr(el.ComputedStyle("z-index"), 0),
			order:  len(entries),
		})
		for _, child := range el.Children() {
			collect(child)
		}
	}
	for _, child := range l.Document().Body().Children() {
		collect(child)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].zIndex < entries[j].zIndex
	})

	var list []DisplayCommand
	for _, e := range entries {
		role := roles(e.el)
		if role == RoleNone {
			continue
		}
		r := l.Rect(e.el, false)
		if r.IsEmpty() {
			continue
		}
		list = append(list, &FrameCommand{
			X0:    int(math.Floor(r.Left() / c.CellWidth)),
			Y0:    int(math.Floor(r.Top() / c.CellHeight)),
			X1:    int(math.Ceil(r.Right()/c.CellWidth)) - 1,
			Y1:    int(math.Ceil(r.Bottom()/c.CellHeight)) - 1,
			Role:  role,
			Label: e.el.ID(),
		})
	}
	return list
}

// String returns the canvas as plain text, one line per row with trailing
// spaces trimmed.
func (c *Canvas) String() string {
	lines := make([]string, c.Height)
	for y := 0; y < c.Height; y++ {
		var sb strings.Builder
		for x := 0; x < c.Width; x++ {
			sb.WriteRune(c.At(x, y).Ch)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// Styles maps roles to terminal styles.
type Styles map[Role]lipgloss.Style

// DefaultStyles colours the reference, floating node and arrow.
func DefaultStyles() Styles {
	return Styles{
		RoleBox:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		RoleContainer: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		RoleReference: lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true),
		RoleFloating:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		RoleArrow:     lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Bold(true),
	}
}

// Styled renders the canvas with each run of same-role cells styled.
func (c *Canvas) Styled(styles Styles) string {
	lines := make([]string, c.Height)
	for y := 0; y < c.Height; y++ {
		var sb strings.Builder
		var run []rune
		runRole := RoleNone
		flush := func() {
			if len(run) == 0 {
				return
			}
			if st, ok := styles[runRole]; ok {
				sb.WriteString(st.Render(string(run)))
			} else {
				sb.WriteString(string(run))
			}
			run = run[:0]
		}
		for x := 0; x < c.Width; x++ {
			cell := c.At(x, y)
			if cell.Role != runRole {
				flush()
				runRole = cell.Role
			}
			run = append(run, cell.Ch)
		}
		flush()
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}
