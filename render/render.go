// Package render draws a sampled expression onto an image: a unit grid, the
// two axes with tick labels, the curve, and a dot at the origin.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/cloudcmds/graphcalc/plot"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Style holds the colors and line widths used when drawing.
type Style struct {
	Background   color.RGBA
	GridColor    color.RGBA
	AxisColor    color.RGBA
	CurveColor   color.RGBA
	OriginColor  color.RGBA
	LabelColor   color.RGBA
	GridWidth    int
	AxisWidth    int
	CurveWidth   int
	OriginRadius int
}

// DefaultStyle returns a white canvas with a dim gray grid, black axes, a
// blue curve and a red origin.
func DefaultStyle() Style {
	return Style{
		Background:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		GridColor:    color.RGBA{R: 0x69, G: 0x69, B: 0x69, A: 0xff},
		AxisColor:    color.RGBA{A: 0xff},
		CurveColor:   color.RGBA{B: 0xff, A: 0xff},
		OriginColor:  color.RGBA{R: 0xff, A: 0xff},
		LabelColor:   color.RGBA{A: 0xff},
		GridWidth:    1,
		AxisWidth:    2,
		CurveWidth:   2,
		OriginRadius: 5,
	}
}

// Option is a configuration function for a Renderer.
type Option func(*Renderer)

// WithStyle replaces the default style.
func WithStyle(style Style) Option {
	return func(r *Renderer) {
		r.style = style
	}
}

// WithLabels enables or disables tick labels. Labels are on by default.
func WithLabels(enabled bool) Option {
	return func(r *Renderer) {
		r.labels = enabled
	}
}

// Renderer draws plots. It holds no per-image state and may be shared.
type Renderer struct {
	style  Style
	labels bool
	face   font.Face
}

// New returns a Renderer configured with the given options.
func New(opts ...Option) *Renderer {
	r := &Renderer{style: DefaultStyle(), labels: true, face: basicfont.Face7x13}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws the view and the given curve segments onto a new image of the
// given size. Segments are in screen coordinates as produced by
// plot.Sampler.Curve.
func (r *Renderer) Render(view plot.View, width, height int, segments []plot.Segment) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.style.Background), image.Point{}, draw.Src)

	grid := view.GridLines(width, height)
	for _, x := range grid.X {
		sx := snap(view.WorldToScreen(plot.Point{X: x}, width, height).X)
		vline(img, sx, r.style.GridWidth, r.style.GridColor)
	}
	for _, y := range grid.Y {
		sy := snap(view.WorldToScreen(plot.Point{Y: y}, width, height).Y)
		hline(img, sy, r.style.GridWidth, r.style.GridColor)
	}

	origin := view.WorldToScreen(plot.Point{}, width, height)
	ox, oy := snap(origin.X), snap(origin.Y)
	hline(img, oy, r.style.AxisWidth, r.style.AxisColor)
	vline(img, ox, r.style.AxisWidth, r.style.AxisColor)

	if r.labels {
		r.drawLabels(img, view, grid, ox, oy)
	}

	for _, seg := range segments {
		for i := 1; i < len(seg.Screen); i++ {
			line(img, seg.Screen[i-1], seg.Screen[i], r.style.CurveWidth, r.style.CurveColor)
		}
		if len(seg.Screen) == 1 {
			p := seg.Screen[0]
			line(img, p, p, r.style.CurveWidth, r.style.CurveColor)
		}
	}

	disc(img, ox, oy, r.style.OriginRadius, r.style.OriginColor)
	return img
}

// drawLabels writes the value of each grid line next to its axis. Labels
// stay inside the image when an axis is off screen.
func (r *Renderer) drawLabels(img *image.RGBA, view plot.View, grid plot.Grid, ox, oy int) {
	metrics := r.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()
	bounds := img.Bounds()

	d := &font.Drawer{Dst: img, Src: image.NewUniform(r.style.LabelColor), Face: r.face}
	for _, x := range grid.X {
		text := label(x)
		sx := snap(view.WorldToScreen(plot.Point{X: x}, bounds.Dx(), bounds.Dy()).X)
		y := clamp(oy+2+ascent, ascent, bounds.Dy()-(lineHeight-ascent))
		d.Dot = fixed.P(sx+2, y)
		d.DrawString(text)
	}
	for _, y := range grid.Y {
		text := label(y)
		sy := snap(view.WorldToScreen(plot.Point{Y: y}, bounds.Dx(), bounds.Dy()).Y)
		textWidth := d.MeasureString(text).Ceil()
		x := clamp(ox+4, 0, bounds.Dx()-textWidth)
		d.Dot = fixed.P(x, sy-2)
		d.DrawString(text)
	}
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func snap(v float64) int {
	return int(math.Round(v))
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// band returns the first pixel of a line of the given width centered on c.
func band(c, width int) (int, int) {
	lo := c - width/2
	return lo, lo + width
}

func hline(img *image.RGBA, y, width int, c color.RGBA) {
	lo, hi := band(y, width)
	b := img.Bounds()
	draw.Draw(img, image.Rect(b.Min.X, lo, b.Max.X, hi).Intersect(b), image.NewUniform(c), image.Point{}, draw.Src)
}

func vline(img *image.RGBA, x, width int, c color.RGBA) {
	lo, hi := band(x, width)
	b := img.Bounds()
	draw.Draw(img, image.Rect(lo, b.Min.Y, hi, b.Max.Y).Intersect(b), image.NewUniform(c), image.Point{}, draw.Src)
}

// line draws a thick line with Bresenham's algorithm, stamping a square brush
// at each step. The segment is first clipped to the image, padded by the
// brush width.
func line(img *image.RGBA, from, to plot.Point, width int, c color.RGBA) {
	if !finite(from) || !finite(to) {
		return
	}
	b := img.Bounds()
	pad := float64(width)
	from, to, ok := clip(from, to, float64(b.Min.X)-pad, float64(b.Max.X)+pad, float64(b.Min.Y)-pad, float64(b.Max.Y)+pad)
	if !ok {
		return
	}
	x0, y0 := snap(from.X), snap(from.Y)
	x1, y1 := snap(to.X), snap(to.Y)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		stamp(img, x0, y0, width, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clip clips the segment to the rectangle using the Liang-Barsky algorithm.
// It reports false if no part of the segment is inside.
func clip(from, to plot.Point, xmin, xmax, ymin, ymax float64) (plot.Point, plot.Point, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, from.X - xmin},
		{dx, xmax - from.X},
		{-dy, from.Y - ymin},
		{dy, ymax - from.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return from, to, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return from, to, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return from, to, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return plot.Point{X: from.X + t0*dx, Y: from.Y + t0*dy},
		plot.Point{X: from.X + t1*dx, Y: from.Y + t1*dy}, true
}

func stamp(img *image.RGBA, x, y, width int, c color.RGBA) {
	xlo, xhi := band(x, width)
	ylo, yhi := band(y, width)
	for py := ylo; py < yhi; py++ {
		for px := xlo; px < xhi; px++ {
			if (image.Point{X: px, Y: py}).In(img.Bounds()) {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

func disc(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius && (image.Point{X: x, Y: y}).In(img.Bounds()) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func finite(p plot.Point) bool {
	return !math.IsInf(p.X, 0) && !math.IsNaN(p.X) && !math.IsInf(p.Y, 0) && !math.IsNaN(p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
