// Package plot maps between world and screen coordinates and samples
// compiled expressions into drawable polylines.
package plot

import "math"

const (
	DefaultScale = 50.0
	MinScale     = 10.0
	MaxScale     = 500.0
	// ZoomFactor is the scale change of one zoom step.
	ZoomFactor = 1.1
)

// Point is a position in world or screen coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis aligned world rectangle.
type Rect struct {
	Left, Right, Bottom, Top float64
}

// View maps world coordinates onto a screen of a given size. Origin is the
// world point drawn at the center of the screen and Scale is the number of
// pixels per world unit. Screen y grows downward.
type View struct {
	Origin Point
	Scale  float64
}

// DefaultView returns a view centered on (0, 0) at the default scale.
func DefaultView() View {
	return View{Scale: DefaultScale}
}

// WorldToScreen converts a world point to screen pixels.
func (v View) WorldToScreen(p Point, width, height int) Point {
	return Point{
		X: float64(width)/2 + (p.X-v.Origin.X)*v.Scale,
		Y: float64(height)/2 - (p.Y-v.Origin.Y)*v.Scale,
	}
}

// ScreenToWorld converts screen pixels to a world point.
func (v View) ScreenToWorld(p Point, width, height int) Point {
	return Point{
		X: v.Origin.X + (p.X-float64(width)/2)/v.Scale,
		Y: v.Origin.Y - (p.Y-float64(height)/2)/v.Scale,
	}
}

// Pan moves the view by a drag of dx, dy screen pixels.
func (v *View) Pan(dx, dy float64) {
	v.Origin.X -= dx / v.Scale
	v.Origin.Y += dy / v.Scale
}

// ZoomAt zooms one step in (direction > 0) or out (direction <= 0) about the
// screen point (px, py), keeping the world point under it fixed. A step that
// would take the scale outside [MinScale, MaxScale] is refused and ZoomAt
// returns false.
func (v *View) ZoomAt(px, py float64, width, height int, direction int) bool {
	change := ZoomFactor
	if direction <= 0 {
		change = 1 / ZoomFactor
	}
	scale := v.Scale * change
	if scale < MinScale || scale > MaxScale {
		return false
	}
	cursor := Point{X: px, Y: py}
	before := v.ScreenToWorld(cursor, width, height)
	v.Scale = scale
	after := v.ScreenToWorld(cursor, width, height)
	v.Origin.X += before.X - after.X
	v.Origin.Y += before.Y - after.Y
	return true
}

// Bounds returns the world rectangle visible on the screen.
func (v View) Bounds(width, height int) Rect {
	halfWidth := float64(width) / 2 / v.Scale
	halfHeight := float64(height) / 2 / v.Scale
	return Rect{
		Left:   v.Origin.X - halfWidth,
		Right:  v.Origin.X + halfWidth,
		Bottom: v.Origin.Y - halfHeight,
		Top:    v.Origin.Y + halfHeight,
	}
}

// Grid holds the world coordinates of grid lines.
type Grid struct {
	// X holds the positions of vertical lines, Y of horizontal lines.
	X, Y []float64
}

// GridLines returns a line at every integer world coordinate from the floor
// to the ceiling of the visible bounds. The axes at 0 are not included.
func (v View) GridLines(width, height int) Grid {
	b := v.Bounds(width, height)
	return Grid{
		X: integersBetween(b.Left, b.Right),
		Y: integersBetween(b.Bottom, b.Top),
	}
}

func integersBetween(lo, hi float64) []float64 {
	var out []float64
	for n := math.Floor(lo); n <= math.Ceil(hi); n++ {
		if n == 0 {
			continue
		}
		out = append(out, n)
	}
	return out
}
