// Command popperctl resolves floating element placements for scenario
// files and HTML pages and prints them, or a character-cell snapshot of
// the resulting layout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(iconError)+" "+err.Error())
		os.Exit(1)
	}
}
