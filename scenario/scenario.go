// Package scenario loads positioning fixtures from TOML files and runs
// them through the positioning engine.
//
// A scenario describes the viewport, the reference and floating elements
// and, optionally, an arrow, a containing box and a scroll container, each
// as inline style plus data attributes:
//
//	name = "tooltip near the bottom edge"
//
//	[viewport]
//	width = 800
//	height = 600
//
//	[reference]
//	style = "position: absolute; left: 100px; top: 500px; width: 100px; height: 20px"
//
//	[floating]
//	style = "width: 200px; height: 150px"
//
//	[options]
//	placement = "bottom"
//	spacing = 8
//
//	[expect]
//	placement = "top"
package scenario

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	ErrNoReference = errors.New("scenario: no [reference] element")
	ErrNoFloating  = errors.New("scenario: no [floating] element")
	ErrBadParent   = errors.New("scenario: unknown parent")
)

// Scenario is one positioning fixture.
type Scenario struct {
	Name     string   `toml:"name"`
	Viewport Viewport `toml:"viewport"`

	Reference *Box `toml:"reference"`
	Floating  *Box `toml:"floating"`
	Arrow     *Box `toml:"arrow"`
	Container *Box `toml:"container"`
	Scroller  *Box `toml:"scroller"`

	Options Options `toml:"options"`
	Expect  *Expect `toml:"expect"`
}

// Viewport is the window size and scroll position.
type Viewport struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	ScrollX float64 `toml:"scroll_x"`
	ScrollY float64 `toml:"scroll_y"`
}

// Box is an element of the fixture.
type Box struct {
	Style string `toml:"style"`
	// Parent is "body" (default) or the table name of another box:
	// "scroller", "container", "reference" or "floating".
	Parent string            `toml:"parent"`
	Data   map[string]string `toml:"data"`

	ScrollLeft float64 `toml:"scroll_left"`
	ScrollTop  float64 `toml:"scroll_top"`
}

// Options are the popper options of the fixture. Unset fields fall back
// to the reference's data attributes and then the registry defaults.
type Options struct {
	Placement    string   `toml:"placement"`
	Position     string   `toml:"position"`
	Spacing      *float64 `toml:"spacing"`
	MinContact   *float64 `toml:"min_contact"`
	Fixed        *bool    `toml:"fixed"`
	UseGPU       *bool    `toml:"use_gpu"`
	NoAttributes bool     `toml:"no_attributes"`
}

// Expect lists the expected outcome. Unset fields are not checked.
type Expect struct {
	Placement string   `toml:"placement"`
	X         *float64 `toml:"x"`
	Y         *float64 `toml:"y"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	var s Scenario
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Decode reads a scenario from r.
func Decode(r io.Reader) (*Scenario, error) {
	var s Scenario
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Parse reads a scenario from a string.
func Parse(text string) (*Scenario, error) {
	return Decode(strings.NewReader(text))
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return fmt.Errorf("scenario: unknown keys %s", strings.Join(names, ", "))
}

func (s *Scenario) validate() error {
	if s.Reference == nil {
		return ErrNoReference
	}
	if s.Floating == nil {
		return ErrNoFloating
	}
	return nil
}
