package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/hexfolio/hexgrid"
	"github.com/phanxgames/hexfolio/poster"
)

var (
	posterOut     string
	posterMode    string
	posterWidth   int
	posterHeight  int
	posterTime    float64
	posterCaption string
)

var posterCmd = &cobra.Command{
	Use:   "poster",
	Short: "Render one grid frame to a PNG file",
	Long: `Render one grid frame to a PNG file.

Examples:
  hexfolio poster -o bg.png
  hexfolio poster --mode trails --time 12 -W 2560 -H 1440`,
	RunE: func(cmd *cobra.Command, args []string) error {
		grid := cfg.Grid
		if posterMode != "" {
			m, err := hexgrid.ParseMode(posterMode)
			if err != nil {
				return err
			}
			grid.Mode = m
			grid.Pulse.ScaleMin, grid.Pulse.ScaleMax = 0, 0
			grid = grid.WithDefaults()
		}
		opts := poster.Options{
			Width:   cfg.Poster.Width,
			Height:  cfg.Poster.Height,
			Time:    cfg.Poster.Time,
			Caption: cfg.Poster.Caption,
		}
		flags := cmd.Flags()
		if flags.Changed("width") {
			opts.Width = posterWidth
		}
		if flags.Changed("height") {
			opts.Height = posterHeight
		}
		if flags.Changed("time") {
			opts.Time = posterTime
		}
		if flags.Changed("caption") {
			opts.Caption = posterCaption
		}

		frame, err := poster.Render(grid, opts)
		if err != nil {
			return err
		}
		if err := frame.SavePNG(posterOut); err != nil {
			return fmt.Errorf("save %s: %w", posterOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d, %s, t=%.2fs)\n",
			posterOut, opts.Width, opts.Height, grid.Mode, opts.Time)
		return nil
	},
}

func init() {
	f := posterCmd.Flags()
	f.StringVarP(&posterOut, "out", "o", "poster.png", "output PNG path")
	f.StringVarP(&posterMode, "mode", "m", "", "grid mode: fill, overlap, trails or strata")
	f.IntVarP(&posterWidth, "width", "W", 0, "frame width in pixels")
	f.IntVarP(&posterHeight, "height", "H", 0, "frame height in pixels")
	f.Float64VarP(&posterTime, "time", "t", 0, "seconds into the animation")
	f.StringVar(&posterCaption, "caption", "", "caption drawn in the lower-left corner")
	rootCmd.AddCommand(posterCmd)
}
