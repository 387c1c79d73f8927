// Command vibepopper opens a desktop viewer on an HTML page, or on a
// built-in demo of the tooltip, popover and dropdown hosts when no page is
// given. Resizing and scrolling the window repositions the poppers live.
package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/config"
	"github.com/chrisuehlinger/vibepopper/network"
	"github.com/chrisuehlinger/vibepopper/observability"
	"github.com/chrisuehlinger/vibepopper/popper"
	"github.com/chrisuehlinger/vibepopper/session"
	"github.com/chrisuehlinger/vibepopper/ui"
)

func main() {
	cfg, err := config.Load(viper.New(), os.Getenv("POPPER_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := observability.NewStderr(cfg.Logger)
	defer func() { _ = logger.Sync() }()

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithDefaults(popper.OptionsFromDefaults(cfg.Popper)...),
	}

	var (
		sess  *session.Session
		onKey func(fyne.KeyName)
		title = "Vibepopper"
	)
	if len(os.Args) > 1 {
		src := os.Args[1]
		client, err := network.NewClient()
		if err != nil {
			logger.Fatal("creating HTTP client", zap.Error(err))
		}
		sess, err = session.Open(context.Background(), network.NewLoader(client, network.WithLogger(logger)), src, opts...)
		if err != nil {
			logger.Fatal("opening page", zap.String("src", src), zap.Error(err))
		}
		for _, err := range sess.RunScripts() {
			logger.Warn("page script failed", zap.Error(err))
		}
		title += " - " + src
	} else {
		d, err := newDemo(cfg.Viewer, logger, opts...)
		if err != nil {
			logger.Fatal("building demo", zap.Error(err))
		}
		sess, onKey = d.session, d.handleKey
		title += " - demo (t: tooltip, p: popover, d: dropdown)"
	}

	viewer := ui.New(app.New(), title, sess.Layout, sess.Loop,
		ui.WithLogger(logger),
		ui.WithRoles(sess.Roles),
		ui.WithKeyHandler(onKey))
	viewer.Run()
}
