package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisuehlinger/vibepopper/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		cellWidth  float64
		cellHeight float64
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "render <scenario.toml|page.html|url>",
		Short: "Print a character-cell snapshot of the settled layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cellWidth <= 0 || cellHeight <= 0 {
				return fmt.Errorf("cell size must be positive, got %vx%v", cellWidth, cellHeight)
			}
			t, err := a.open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			canvas := render.ForViewport(t.layout.Document(), cellWidth, cellHeight)
			canvas.Paint(t.layout, t.roles)
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), canvas.String())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), canvas.Styled(render.DefaultStyles()))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&cellWidth, "cell-width", 10, "pixels per column")
	cmd.Flags().Float64Var(&cellHeight, "cell-height", 20, "pixels per row")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colours")
	return cmd
}
