// Package widget provides the floating components that host a Popper:
// tooltips, popovers and dropdown menus. A host creates its Popper when
// shown and disposes it when hidden.
package widget

import (
	"errors"
	"fmt"

	"github.com/chrisuehlinger/vibepopper/dom"
	"github.com/chrisuehlinger/vibepopper/loop"
	"github.com/chrisuehlinger/vibepopper/popper"
)

// Kind names a host type.
type Kind string

const (
	KindTooltip  Kind = "tooltip"
	KindPopover  Kind = "popover"
	KindDropdown Kind = "dropdown"
)

var ErrDetachedReference = errors.New("widget: reference is not in a document")

// Host shows a floating node next to a reference element.
type Host struct {
	kind      Kind
	registry  *popper.Registry
	reference *dom.Element
	node      *dom.Element
	opts      []popper.Option

	popper  *popper.Popper
	frame   loop.FrameID
	pending bool
}

// NewTooltip creates a tooltip host. Tooltips default to the top side and
// are inserted into the body while shown.
func NewTooltip(registry *popper.Registry, reference, node *dom.Element, opts ...popper.Option) *Host {
	return newHost(KindTooltip, registry, reference, node,
		append([]popper.Option{popper.WithPlacement(popper.Top), popper.WithSpacing(6)}, opts...))
}

// NewPopover creates a popover host. Popovers default to the right side.
func NewPopover(registry *popper.Registry, reference, node *dom.Element, opts ...popper.Option) *Host {
	return newHost(KindPopover, registry, reference, node,
		append([]popper.Option{popper.WithPlacement(popper.Right), popper.WithSpacing(8)}, opts...))
}

// NewDropdown creates a dropdown menu host. The menu opens below the
// toggle, aligned to its start, and lives next to the toggle; hiding it
// sets display: none instead of detaching it.
func NewDropdown(registry *popper.Registry, toggle, menu *dom.Element, opts ...popper.Option) *Host {
	return newHost(KindDropdown, registry, toggle, menu,
		append([]popper.Option{popper.WithPlacement(popper.Bottom), popper.WithPosition(popper.Start), popper.WithSpacing(2)}, opts...))
}

func newHost(kind Kind, registry *popper.Registry, reference, node *dom.Element, opts []popper.Option) *Host {
	return &Host{kind: kind, registry: registry, reference: reference, node: node, opts: opts}
}

// Kind returns the host type.
func (h *Host) Kind() Kind {
	return h.kind
}

// Node returns the floating node.
func (h *Host) Node() *dom.Element {
	return h.node
}

// Reference returns the reference element.
func (h *Host) Reference() *dom.Element {
	return h.reference
}

// Popper returns the live popper, or nil while hidden.
func (h *Host) Popper() *popper.Popper {
	return h.popper
}

// Shown reports whether the host is showing.
func (h *Host) Shown() bool {
	return h.popper != nil
}

// Show inserts and reveals the node, creates the popper and schedules a
// second update on the next animation frame, once content inserted along
// with the node has settled.
func (h *Host) Show() error {
	if h.Shown() {
		return nil
	}
	if !h.reference.IsConnected() {
		return ErrDetachedReference
	}

	if !h.node.IsConnected() {
		parent := h.reference.OwnerDocument().Body()
		if h.kind == KindDropdown && h.reference.Parent() != nil {
			parent = h.reference.Parent()
		}
		if err := parent.AppendChild(h.node); err != nil {
			return fmt.Errorf("insert %s: %w", h.kind, err)
		}
	}
	h.node.SetStyle(map[string]string{"display": ""})

	p, err := popper.New(h.registry, h.node, append([]popper.Option{popper.WithReference(h.reference)}, h.opts...)...)
	if err != nil {
		return fmt.Errorf("create %s popper: %w", h.kind, err)
	}
	h.popper = p

	h.pending = true
	h.frame = h.registry.Frames().RequestFrame(func() {
		h.pending = false
		p.Update()
	})
	return nil
}

// Hide disposes the popper and takes the node out of the page.
func (h *Host) Hide() {
	if !h.Shown() {
		return
	}
	if h.pending {
		h.registry.Frames().CancelFrame(h.frame)
		h.pending = false
	}
	h.popper.Dispose()
	h.popper = nil

	if h.kind == KindDropdown {
		h.node.SetStyle(map[string]string{"display": "none"})
		return
	}
	h.node.Remove()
}

// Toggle shows a hidden host and hides a shown one.
func (h *Host) Toggle() error {
	if h.Shown() {
		h.Hide()
		return nil
	}
	return h.Show()
}
