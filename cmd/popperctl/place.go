package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/vibepopper/geom"
)

func newPlaceCmd(a *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "place <scenario.toml|page.html|url>",
		Short: "Resolve the placement of every popper in a scenario or page",
		Long: `Runs a TOML scenario, or loads an HTML page and runs its scripts, then
prints the resolved placement, position and box of each popper.

With --check, a scenario must match its [expect] table and a page must run
its scripts without errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printTitle(out, t.source)
			for _, p := range t.placed {
				printPlaced(out, p)
			}
			if !check {
				return nil
			}
			if t.check != nil {
				printFailure(out, "check failed")
				return t.check
			}
			printSuccess(out, "check passed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "fail unless expectations hold")
	return cmd
}

func printPlaced(w io.Writer, p placed) {
	fmt.Fprintln(w, p.Name)
	if p.Hidden {
		printField(w, "state", "hidden")
		return
	}
	printField(w, "placement", string(p.Placement))
	printField(w, "position", string(p.Position))
	printField(w, "offset", num(p.Offset.X)+","+num(p.Offset.Y))
	printField(w, "node", formatRect(p.Node))
	if len(p.Arrow) > 0 {
		printField(w, "arrow", formatProps(p.Arrow))
	}
}

func formatRect(r geom.Rect) string {
	return fmt.Sprintf("x=%s y=%s w=%s h=%s", num(r.X), num(r.Y), num(r.Width), num(r.Height))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
