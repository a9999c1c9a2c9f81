package main

import (
	"fmt"

	"github.com/cloudcmds/graphcalc/plot"
	"github.com/cloudcmds/graphcalc/render"
	"github.com/spf13/cobra"
)

func newPlotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot EXPR",
		Short: "Render an expression to a PNG image",
		Example: `  graphcalc plot "sin(x)/x" --out sinc.png
  graphcalc plot "1/x" --scale 100 --zoom 3 --pan-x 40 --out - > recip.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			out, _ := flags.GetString("out")
			width, _ := flags.GetInt("width")
			height, _ := flags.GetInt("height")
			originX, _ := flags.GetFloat64("origin-x")
			originY, _ := flags.GetFloat64("origin-y")
			scale, _ := flags.GetFloat64("scale")
			zoom, _ := flags.GetInt("zoom")
			panX, _ := flags.GetFloat64("pan-x")
			panY, _ := flags.GetFloat64("pan-y")
			labels, _ := flags.GetBool("labels")

			if width < 1 || height < 1 {
				return fmt.Errorf("invalid size %dx%d", width, height)
			}
			if scale < plot.MinScale || scale > plot.MaxScale {
				return fmt.Errorf("scale %v outside [%v, %v]", scale, plot.MinScale, plot.MaxScale)
			}
			program, err := a.compile(args[0])
			if err != nil {
				return err
			}

			view := plot.View{Origin: plot.Point{X: originX, Y: originY}, Scale: scale}
			view.Pan(panX, panY)
			cx, cy := float64(width)/2, float64(height)/2
			for i := 0; i < abs(zoom); i++ {
				if !view.ZoomAt(cx, cy, width, height, zoom) {
					a.logger.Warn().Int("step", i).Float64("scale", view.Scale).Msg("zoom limit reached")
					break
				}
			}

			segments, err := a.sampler().Curve(program.Code(), view, width, height)
			if err != nil {
				return err
			}
			img := render.New(render.WithLabels(labels)).Render(view, width, height, segments)
			if out == "-" {
				return render.Encode(a.stdout, img)
			}
			if err := render.Save(out, img); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "wrote %s (%dx%d, %d segments)\n", out, width, height, len(segments))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.String("out", "plot.png", "output file, or - for stdout")
	flags.Int("width", 800, "image width in pixels")
	flags.Int("height", 600, "image height in pixels")
	flags.Float64("origin-x", 0, "world x at the center of the image")
	flags.Float64("origin-y", 0, "world y at the center of the image")
	flags.Float64("scale", plot.DefaultScale, "pixels per world unit")
	flags.Int("zoom", 0, "zoom steps about the center; negative zooms out")
	flags.Float64("pan-x", 0, "horizontal drag in pixels")
	flags.Float64("pan-y", 0, "vertical drag in pixels")
	flags.Bool("labels", true, "draw tick labels")
	return cmd
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
