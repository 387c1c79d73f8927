package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/config"
	"github.com/chrisuehlinger/vibepopper/html"
	"github.com/chrisuehlinger/vibepopper/popper"
	"github.com/chrisuehlinger/vibepopper/session"
	"github.com/chrisuehlinger/vibepopper/widget"
)

// demoMarkup lays out three references spread over the viewport so each
// host has to flip at some window size. The arguments are the viewport
// size, the info button position and the toolbar top.
const demoMarkup = `<html><head><meta name="viewport" content="width=%[1]v, height=%[2]v"></head><body>
<div id="save" style="position: absolute; left: 40px; top: 40px; width: 120px; height: 32px"></div>
<div id="info" style="position: absolute; left: %[3]vpx; top: %[4]vpx; width: 32px; height: 32px"></div>
<div id="toolbar" style="position: absolute; left: 40px; top: %[5]vpx; width: 240px; height: 40px">
	<div id="menu-toggle" style="position: absolute; left: 120px; top: 4px; width: 100px; height: 32px"></div>
	<div id="menu" style="display: none; width: 160px; height: 180px"></div>
</div>
</body></html>`

type demo struct {
	session *session.Session
	hosts   map[fyne.KeyName]*widget.Host
	logger  *zap.Logger
}

func newDemo(vc config.ViewerConfig, logger *zap.Logger, opts ...session.Option) (*demo, error) {
	w, h := max(vc.Width, 320), max(vc.Height, 240)
	page, err := html.Parse(fmt.Sprintf(demoMarkup, w, h, w-72, int(h*0.45), h-80))
	if err != nil {
		return nil, err
	}
	sess := session.New(page, opts...)
	doc := sess.Document()

	tip := doc.CreateElement("div")
	tip.SetAttribute("id", "save-tip")
	tip.SetAttribute("style", "width: 140px; height: 28px")
	arrow := doc.CreateElement("div")
	arrow.SetAttribute("id", "save-tip-arrow")
	arrow.SetAttribute("style", "position: absolute; width: 10px; height: 6px")
	if err := tip.AppendChild(arrow); err != nil {
		return nil, err
	}

	pop := doc.CreateElement("div")
	pop.SetAttribute("id", "info-pop")
	pop.SetAttribute("style", "width: 220px; height: 120px")

	reg := sess.Registry
	return &demo{
		session: sess,
		logger:  logger,
		hosts: map[fyne.KeyName]*widget.Host{
			fyne.KeyT: widget.NewTooltip(reg, doc.GetElementByID("save"), tip, popper.WithArrow(arrow)),
			fyne.KeyP: widget.NewPopover(reg, doc.GetElementByID("info"), pop),
			fyne.KeyD: widget.NewDropdown(reg, doc.GetElementByID("menu-toggle"), doc.GetElementByID("menu")),
		},
	}, nil
}

func (d *demo) handleKey(key fyne.KeyName) {
	h, ok := d.hosts[key]
	if !ok {
		return
	}
	if err := h.Toggle(); err != nil {
		d.logger.Warn("toggle failed", zap.String("kind", string(h.Kind())), zap.Error(err))
	}
}
