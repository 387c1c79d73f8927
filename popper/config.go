package popper

import (
	"strconv"
	"strings"

	"github.com/chrisuehlinger/vibepopper/config"
	"github.com/chrisuehlinger/vibepopper/css"
	"github.com/chrisuehlinger/vibepopper/dom"
)

// Config is the resolved per-instance configuration.
type Config struct {
	// Reference is the element the node is positioned against. Required.
	Reference *dom.Element
	// Container further restricts the available space.
	Container *dom.Element
	// Arrow is an optional arrow element inside the node.
	Arrow *dom.Element

	Placement Placement
	Position  Position

	// Fixed positions against the viewport and keeps the configured
	// placement unless it is Auto.
	Fixed bool
	// Spacing is the gap between reference and node in pixels.
	Spacing float64
	// MinContact is the minimum cross-axis overlap preserved when
	// clamping. Nil derives it from the smaller extent.
	MinContact *float64
	// UseGPU positions with a transform instead of margins.
	UseGPU bool
	// NoAttributes suppresses the placement marker on the reference.
	NoAttributes bool

	// BeforeUpdate runs after offsets are reset and before measuring.
	BeforeUpdate func(node, reference *dom.Element)
	// AfterUpdate runs after the node (and arrow) styles are written.
	AfterUpdate func(node, reference *dom.Element, state State)
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Placement: Bottom,
		Position:  Center,
		UseGPU:    true,
	}
}

// Option overrides a configuration field.
type Option func(*Config)

// WithReference sets the reference element.
func WithReference(el *dom.Element) Option {
	return func(c *Config) { c.Reference = el }
}

// WithContainer sets the container element.
func WithContainer(el *dom.Element) Option {
	return func(c *Config) { c.Container = el }
}

// WithArrow sets the arrow element.
func WithArrow(el *dom.Element) Option {
	return func(c *Config) { c.Arrow = el }
}

// WithPlacement sets the requested placement.
func WithPlacement(p Placement) Option {
	return func(c *Config) { c.Placement = p }
}

// WithPosition sets the cross-axis position.
func WithPosition(p Position) Option {
	return func(c *Config) { c.Position = p }
}

// WithFixed sets fixed mode.
func WithFixed(fixed bool) Option {
	return func(c *Config) { c.Fixed = fixed }
}

// WithSpacing sets the spacing in pixels.
func WithSpacing(spacing float64) Option {
	return func(c *Config) { c.Spacing = spacing }
}

// WithMinContact sets the minimum contact. A negative value unsets it.
func WithMinContact(px float64) Option {
	return func(c *Config) {
		if px < 0 {
			c.MinContact = nil
			return
		}
		c.MinContact = &px
	}
}

// WithGPU selects transform (true) or margin (false) positioning.
func WithGPU(useGPU bool) Option {
	return func(c *Config) { c.UseGPU = useGPU }
}

// WithoutAttributes suppresses the reference placement marker.
func WithoutAttributes() Option {
	return func(c *Config) { c.NoAttributes = true }
}

// WithBeforeUpdate sets the pre-measurement hook.
func WithBeforeUpdate(fn func(node, reference *dom.Element)) Option {
	return func(c *Config) { c.BeforeUpdate = fn }
}

// WithAfterUpdate sets the post-mutation hook.
func WithAfterUpdate(fn func(node, reference *dom.Element, state State)) Option {
	return func(c *Config) { c.AfterUpdate = fn }
}

// OptionsFromDefaults converts file-level defaults into options.
func OptionsFromDefaults(d config.PopperDefaults) []Option {
	opts := []Option{
		WithSpacing(d.Spacing),
		WithMinContact(d.MinContact),
		WithFixed(d.Fixed),
		WithGPU(d.UseGPU),
	}
	if d.Placement != "" {
		opts = append(opts, WithPlacement(ParsePlacement(d.Placement)))
	}
	if d.Position != "" {
		opts = append(opts, WithPosition(ParsePosition(d.Position)))
	}
	if d.NoAttributes {
		opts = append(opts, WithoutAttributes())
	}
	return opts
}

// resolveConfig applies, in increasing precedence: base, the reference's
// data attributes, then opts. It returns the config with a nil Reference
// if none was supplied.
func resolveConfig(base []Option, opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range base {
		opt(&cfg)
	}

	probe := cfg
	for _, opt := range opts {
		opt(&probe)
	}
	if probe.Reference == nil {
		return probe
	}

	applyDataset(&cfg, probe.Reference)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// applyDataset reads data-placement, data-position, data-spacing,
// data-min-contact, data-fixed, data-use-gpu and data-no-attributes.
func applyDataset(cfg *Config, el *dom.Element) {
	if v, ok := el.Data("placement"); ok {
		cfg.Placement = ParsePlacement(v)
	}
	if v, ok := el.Data("position"); ok {
		cfg.Position = ParsePosition(v)
	}
	if v, ok := el.Data("spacing"); ok {
		if px, ok := css.ParseLength(v); ok {
			cfg.Spacing = px
		}
	}
	if v, ok := el.Data("minContact"); ok {
		cfg.MinContact = parseMinContact(v)
	}
	if v, ok := el.Data("fixed"); ok {
		cfg.Fixed = parseFlag(v)
	}
	if v, ok := el.Data("useGpu"); ok {
		cfg.UseGPU = parseFlag(v)
	}
	if v, ok := el.Data("noAttributes"); ok {
		cfg.NoAttributes = parseFlag(v)
	}
}

// parseMinContact treats "false", "null", unparsable and negative values
// as unset.
func parseMinContact(v string) *float64 {
	px, ok := css.ParseLength(v)
	if !ok || px < 0 {
		return nil
	}
	return &px
}

// parseFlag follows boolean attribute semantics: present and not "false"
// means true.
func parseFlag(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err != nil || b
}
