package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/hexfolio"
	"github.com/phanxgames/hexfolio/hexgrid"
	"github.com/phanxgames/hexfolio/showcase"
)

var (
	runMode    string
	runNoCards bool
	runShowFPS bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a window with the live grid and showcase",
	RunE: func(cmd *cobra.Command, args []string) error {
		grid := cfg.Grid
		if runMode != "" {
			m, err := hexgrid.ParseMode(runMode)
			if err != nil {
				return err
			}
			grid.Mode = m
			grid.Pulse.ScaleMin, grid.Pulse.ScaleMax = 0, 0
			grid = grid.WithDefaults()
		}

		scene := hexfolio.NewScene()
		bg := hexgrid.CellColor(grid.Hue/360, grid.Saturation, 0.06)
		scene.ClearColor = hexfolio.Color{R: bg.R, G: bg.G, B: bg.B, A: 1}
		hexfolio.NewSurface(scene, grid)
		if !runNoCards {
			showcase.New(scene, showcase.Options{})
		}

		w := cfg.Window
		return hexfolio.Run(scene, hexfolio.RunConfig{
			Title:     w.Title,
			Width:     w.Width,
			Height:    w.Height,
			Resizable: w.Resizable,
			ShowFPS:   w.ShowFPS || runShowFPS,
			Debug:     w.Debug,
		})
	},
}

func init() {
	runCmd.Flags().StringVarP(&runMode, "mode", "m", "", "grid mode: fill, overlap, trails or strata")
	runCmd.Flags().BoolVar(&runNoCards, "no-cards", false, "show the grid without the project showcase")
	runCmd.Flags().BoolVar(&runShowFPS, "fps", false, "show the FPS counter")
	rootCmd.AddCommand(runCmd)
}
