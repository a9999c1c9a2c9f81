package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/cloudcmds/graphcalc/compiler"
	"github.com/cloudcmds/graphcalc/plot"
	"github.com/stretchr/testify/require"
)

func renderExpr(t *testing.T, source string, opts ...Option) *image.RGBA {
	t.Helper()
	code, err := compiler.Compile(source)
	require.Nil(t, err)
	view := plot.DefaultView()
	segments, err := plot.NewSampler().Curve(code, view, 200, 100)
	require.Nil(t, err)
	return New(opts...).Render(view, 200, 100, segments)
}

func TestRenderLayers(t *testing.T) {
	style := DefaultStyle()
	img := renderExpr(t, "x", WithLabels(false))
	require.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())

	// Background away from every line.
	require.Equal(t, style.Background, img.RGBAAt(10, 10))
	// Grid line at world x = -1.
	require.Equal(t, style.GridColor, img.RGBAAt(50, 10))
	// Horizontal axis, away from the origin and the curve.
	require.Equal(t, style.AxisColor, img.RGBAAt(20, 50))
	require.Equal(t, style.AxisColor, img.RGBAAt(20, 49))
	// Vertical axis.
	require.Equal(t, style.AxisColor, img.RGBAAt(100, 90))
	// The curve y = x passes through world (0.6, 0.6).
	require.Equal(t, style.CurveColor, img.RGBAAt(130, 20))
	// The origin is drawn last.
	require.Equal(t, style.OriginColor, img.RGBAAt(100, 50))
	require.Equal(t, style.OriginColor, img.RGBAAt(104, 50))
}

func TestLabelsDrawText(t *testing.T) {
	plain := renderExpr(t, "x", WithLabels(false))
	labeled := renderExpr(t, "x")
	differs := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if plain.RGBAAt(x, y) != labeled.RGBAAt(x, y) {
				differs++
			}
		}
	}
	require.Greater(t, differs, 0)
}

func TestCustomStyle(t *testing.T) {
	style := DefaultStyle()
	style.Background = color.RGBA{R: 1, G: 2, B: 3, A: 0xff}
	img := renderExpr(t, "x", WithStyle(style), WithLabels(false))
	require.Equal(t, style.Background, img.RGBAAt(10, 10))
}

func TestSteepAndOffscreenCurves(t *testing.T) {
	for _, source := range []string{"1/x", "tan(x)", "x^50", "1000000x", "10^300 x"} {
		img := renderExpr(t, source)
		require.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds(), source)
	}
}

func TestClip(t *testing.T) {
	from, to, ok := clip(plot.Point{X: -10, Y: 5}, plot.Point{X: 20, Y: 5}, 0, 10, 0, 10)
	require.True(t, ok)
	require.Equal(t, plot.Point{X: 0, Y: 5}, from)
	require.Equal(t, plot.Point{X: 10, Y: 5}, to)

	_, _, ok = clip(plot.Point{X: -10, Y: -5}, plot.Point{X: 20, Y: -5}, 0, 10, 0, 10)
	require.False(t, ok)
}

func TestSaveAndEncode(t *testing.T) {
	img := renderExpr(t, "sin(x)")
	path := filepath.Join(t.TempDir(), "plot.png")
	require.Nil(t, Save(path, img))

	loaded, err := imgio.Open(path)
	require.Nil(t, err)
	require.Equal(t, img.Bounds(), loaded.Bounds())

	var buf bytes.Buffer
	require.Nil(t, Encode(&buf, img))
	decoded, err := png.Decode(&buf)
	require.Nil(t, err)
	require.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestSaveError(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	err := Save(filepath.Join(t.TempDir(), "missing", "plot.png"), img)
	require.Error(t, err)
}
